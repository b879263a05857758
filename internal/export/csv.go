// Package export renders a parsed document as CSV or XLSX.
package export

import (
	"encoding/csv"
	"io"

	"github.com/shopspring/decimal"

	"parsify/internal/docai"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// lineItemColumns defines the CSV header row.
var lineItemColumns = []string{
	"Description",
	"Quantity",
	"Unit",
	"Unit Price",
	"Amount",
	"Product Code",
}

// CSVWriter writes a document's line items as CSV.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the line-item header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(lineItemColumns)
}

// WriteDocument writes one row per line item. Absent fields stay empty.
func (w *CSVWriter) WriteDocument(doc *docai.Document) error {
	for _, li := range doc.LineItems() {
		if err := w.csv.Write(lineItemToRow(li)); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}

func lineItemToRow(li *docai.LineItem) []string {
	row := make([]string, len(lineItemColumns))
	row[0] = orEmpty(li.Description)
	if li.Quantity != nil {
		row[1] = li.Quantity.String()
	}
	row[2] = orEmpty(li.Unit)
	row[3] = formatAmount(li.UnitPrice)
	row[4] = formatAmount(li.Amount)
	row[5] = orEmpty(li.ProductCode)
	return row
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
