package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"parsify/internal/docai"
	"parsify/internal/domain"
	"parsify/internal/export"
	"parsify/internal/port"
	"parsify/internal/processor"
)

// DocumentHandler handles parse and document endpoints.
type DocumentHandler struct {
	repo             port.DocumentRepository
	defaultProcessor string
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(repo port.DocumentRepository, defaultProcessor string) *DocumentHandler {
	return &DocumentHandler{repo: repo, defaultProcessor: defaultProcessor}
}

// LineItemView is the response shape of one rebuilt line item. Quantity keeps
// the source's numeric-vs-string distinction.
type LineItemView struct {
	Description *string          `json:"description,omitempty"`
	Quantity    *docai.Quantity  `json:"quantity,omitempty"`
	Unit        *string          `json:"unit,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	ProductCode *string          `json:"product_code,omitempty"`
}

// ParseResult is the response shape of one parsed document.
type ParseResult struct {
	ID              uuid.UUID        `json:"id"`
	Processor       string           `json:"processor"`
	SupplierName    *string          `json:"supplier_name,omitempty"`
	SupplierAddress *string          `json:"supplier_address,omitempty"`
	SupplierPhone   *string          `json:"supplier_phone,omitempty"`
	ReceiptDate     *string          `json:"receipt_date,omitempty"`
	PurchaseTime    *string          `json:"purchase_time,omitempty"`
	TotalAmount     *decimal.Decimal `json:"total_amount,omitempty"`
	TotalTaxAmount  *decimal.Decimal `json:"total_tax_amount,omitempty"`
	Currency        *string          `json:"currency,omitempty"`
	PaymentType     *string          `json:"payment_type,omitempty"`
	CardLastFour    *string          `json:"card_last_four,omitempty"`
	PaymentAuthID   *string          `json:"payment_authorization_id,omitempty"`
	EntityCount     int              `json:"entity_count"`
	LineItems       []LineItemView   `json:"line_items"`
	Issues          []string         `json:"issues,omitempty"`
}

// Parse handles POST /api/v1/parse. The body is the raw extraction output;
// the optional processor query selects the processor implementation.
func (h *DocumentHandler) Parse(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "READ_FAILED", "failed to read request body")
		return
	}

	name := c.DefaultQuery("processor", h.defaultProcessor)
	raw, err := processor.NormalizeInput(body)
	if err != nil {
		HandleError(c, err)
		return
	}
	proc, err := processor.New(name)
	if err != nil {
		HandleError(c, err)
		return
	}
	doc, err := proc.Process(raw)
	if err != nil {
		HandleError(c, err)
		return
	}

	rec := toRecord(doc, name)
	if err := h.repo.Create(c.Request.Context(), rec); err != nil {
		HandleError(c, err)
		return
	}

	result := toResult(doc, name)
	result.ID = rec.ID
	RespondCreated(c, result)
}

// List handles GET /api/v1/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	docs, total, err := h.repo.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id. The stored record includes the
// verbatim raw input for debugging.
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		HandleError(c, domain.ErrInvalidDocumentID)
		return
	}
	doc, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Delete handles DELETE /api/v1/documents/:id.
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		HandleError(c, domain.ErrInvalidDocumentID)
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": id})
}

// Export handles GET /api/v1/documents/:id/export?format=csv|xlsx. The stored
// raw input is reprocessed so the export always reflects the full document.
func (h *DocumentHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		HandleError(c, domain.ErrInvalidDocumentID)
		return
	}
	rec, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	proc, err := processor.New(rec.Processor)
	if err != nil {
		HandleError(c, err)
		return
	}
	doc, err := proc.Process(rec.RawData)
	if err != nil {
		HandleError(c, err)
		return
	}

	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportCSV)))
	switch format {
	case domain.ExportCSV:
		var buf bytes.Buffer
		buf.Write(export.BOM)
		w := export.NewCSVWriter(&buf)
		if err := w.WriteHeader(); err == nil {
			err = w.WriteDocument(doc)
		}
		w.Flush()
		if err != nil {
			HandleError(c, err)
			return
		}
		if err := w.Error(); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", rec.ID))
		c.Data(http.StatusOK, domain.ExportContentTypes[domain.ExportCSV], buf.Bytes())
	case domain.ExportXLSX:
		f, err := export.Workbook(doc)
		if err != nil {
			HandleError(c, err)
			return
		}
		buf, err := f.WriteToBuffer()
		if err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", rec.ID))
		c.Data(http.StatusOK, domain.ExportContentTypes[domain.ExportXLSX], buf.Bytes())
	default:
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "supported formats: csv, xlsx")
	}
}

// Processors handles GET /api/v1/processors.
func (h *DocumentHandler) Processors(c *gin.Context) {
	RespondOK(c, gin.H{"processors": processor.Names(), "default": h.defaultProcessor})
}

func toRecord(doc *docai.Document, name string) *domain.ParsedDocument {
	rec := &domain.ParsedDocument{
		Processor:     name,
		LineItemCount: len(doc.LineItems()),
		RawData:       doc.Raw(),
	}
	if v, ok := doc.SupplierName(); ok {
		rec.SupplierName = v
	}
	if v, ok := doc.ReceiptDate(); ok {
		rec.ReceiptDate = v.Format("2006-01-02")
	}
	if v, ok := doc.TotalAmount(); ok {
		rec.TotalAmount = v.String()
	}
	if v, ok := doc.Currency(); ok {
		rec.Currency = v
	}
	return rec
}

func toResult(doc *docai.Document, name string) *ParseResult {
	result := &ParseResult{
		Processor:       name,
		SupplierName:    optText(doc.SupplierName()),
		SupplierAddress: optText(doc.SupplierAddress()),
		SupplierPhone:   optText(doc.SupplierPhone()),
		Currency:        optText(doc.Currency()),
		PaymentType:     optText(doc.PaymentType()),
		CardLastFour:    optText(doc.CardLastFour()),
		PaymentAuthID:   optText(doc.PaymentAuthorizationID()),
		TotalAmount:     optAmount(doc.TotalAmount()),
		TotalTaxAmount:  optAmount(doc.TotalTaxAmount()),
		EntityCount:     len(doc.Entities()),
		LineItems:       make([]LineItemView, 0, len(doc.LineItems())),
	}
	if v, ok := doc.ReceiptDate(); ok {
		s := v.Format("2006-01-02")
		result.ReceiptDate = &s
	}
	if v, ok := doc.PurchaseTime(); ok {
		s := v.Format(time.RFC3339Nano)
		result.PurchaseTime = &s
	}
	for _, li := range doc.LineItems() {
		result.LineItems = append(result.LineItems, LineItemView{
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
			ProductCode: li.ProductCode,
		})
		for _, issue := range li.Issues() {
			result.Issues = append(result.Issues, issue.Error())
		}
	}
	return result
}

func optText(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}

func optAmount(d decimal.Decimal, ok bool) *decimal.Decimal {
	if !ok {
		return nil
	}
	return &d
}
