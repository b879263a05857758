// Package docai converts the JSON output of an optical document-extraction
// service into typed, queryable domain objects. Every constructor is total:
// malformed payloads yield absent values, never errors.
package docai

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Entity type tags emitted by the extraction service for expense documents.
const (
	TypeSupplierName    = "supplier_name"
	TypeSupplierAddress = "supplier_address"
	TypeSupplierPhone   = "supplier_phone"
	TypeReceiptDate     = "receipt_date"
	TypePurchaseTime    = "purchase_time"
	TypeTotalAmount     = "total_amount"
	TypeTotalTaxAmount  = "total_tax_amount"
	TypeCurrency        = "currency"
	TypePaymentType     = "payment_type"
	TypeCardLastFour    = "credit_card_last_four_digits"
	TypePaymentAuthID   = "payment_authorization_id"
	TypeLineItem        = "line_item"
)

// Line-item property tags, namespaced under the group tag.
const (
	TypeLineItemDescription = "line_item/description"
	TypeLineItemQuantity    = "line_item/quantity"
	TypeLineItemUnit        = "line_item/unit"
	TypeLineItemUnitPrice   = "line_item/unit_price"
	TypeLineItemAmount      = "line_item/amount"
	TypeLineItemProductCode = "line_item/product_code"
)

// Kind is the closed set of entity and line-item property kinds this package
// understands. Tags outside the set map to KindOther, so records with new
// service types are carried through rather than dropped.
type Kind int

const (
	KindOther Kind = iota
	KindSupplierName
	KindSupplierAddress
	KindSupplierPhone
	KindReceiptDate
	KindPurchaseTime
	KindTotalAmount
	KindTotalTaxAmount
	KindCurrency
	KindPaymentType
	KindCardLastFour
	KindPaymentAuthID
	KindLineItem
	KindLineItemDescription
	KindLineItemQuantity
	KindLineItemUnit
	KindLineItemUnitPrice
	KindLineItemAmount
	KindLineItemProductCode
)

var kindByType = map[string]Kind{
	TypeSupplierName:        KindSupplierName,
	TypeSupplierAddress:     KindSupplierAddress,
	TypeSupplierPhone:       KindSupplierPhone,
	TypeReceiptDate:         KindReceiptDate,
	TypePurchaseTime:        KindPurchaseTime,
	TypeTotalAmount:         KindTotalAmount,
	TypeTotalTaxAmount:      KindTotalTaxAmount,
	TypeCurrency:            KindCurrency,
	TypePaymentType:         KindPaymentType,
	TypeCardLastFour:        KindCardLastFour,
	TypePaymentAuthID:       KindPaymentAuthID,
	TypeLineItem:            KindLineItem,
	TypeLineItemDescription: KindLineItemDescription,
	TypeLineItemQuantity:    KindLineItemQuantity,
	TypeLineItemUnit:        KindLineItemUnit,
	TypeLineItemUnitPrice:   KindLineItemUnitPrice,
	TypeLineItemAmount:      KindLineItemAmount,
	TypeLineItemProductCode: KindLineItemProductCode,
}

// KindOf maps a raw type tag to its Kind. Unrecognized tags map to KindOther.
func KindOf(entityType string) Kind {
	return kindByType[entityType]
}

// Vertex is one normalized polygon coordinate, passed through untouched.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type rawBoundingPoly struct {
	NormalizedVertices []Vertex `json:"normalizedVertices"`
}

type rawPageRef struct {
	BoundingPoly rawBoundingPoly `json:"boundingPoly"`
}

type rawPageAnchor struct {
	PageRefs []rawPageRef `json:"pageRefs"`
}

type rawEntity struct {
	Type            *string           `json:"type"`
	MentionText     *string           `json:"mentionText"`
	Confidence      float64           `json:"confidence"`
	NormalizedValue *NormalizedValue  `json:"normalizedValue"`
	PageAnchor      *rawPageAnchor    `json:"pageAnchor"`
	Properties      []json.RawMessage `json:"properties"`
}

// Entity wraps one raw entity record from the extraction output. It is
// immutable after construction and keeps the record verbatim for debugging
// and pass-through.
type Entity struct {
	raw json.RawMessage
	rec rawEntity
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}

func parseEntity(raw json.RawMessage) (*Entity, error) {
	e := &Entity{raw: cloneRaw(raw)}
	if err := json.Unmarshal(raw, &e.rec); err != nil {
		return e, err
	}
	return e, nil
}

// ParseEntity decodes one raw entity record. Decoding is lenient: a record
// that is not a valid entity object still yields an Entity carrying its raw
// bytes, with every typed accessor absent.
func ParseEntity(raw json.RawMessage) *Entity {
	e, _ := parseEntity(raw)
	return e
}

// Raw returns the verbatim record the entity was built from.
func (e *Entity) Raw() json.RawMessage { return e.raw }

// Type returns the raw type tag, or "" when the record omits it.
func (e *Entity) Type() string {
	if e.rec.Type == nil {
		return ""
	}
	return *e.rec.Type
}

// Kind returns the closed-set kind for the entity's type tag.
func (e *Entity) Kind() Kind { return KindOf(e.Type()) }

// MentionText returns the verbatim extracted text span, or "" when absent.
func (e *Entity) MentionText() string {
	if e.rec.MentionText == nil {
		return ""
	}
	return *e.rec.MentionText
}

// Confidence returns the source-supplied score unmodified.
func (e *Entity) Confidence() float64 { return e.rec.Confidence }

// Normalized returns the decoded normalized-value payload, or nil.
func (e *Entity) Normalized() *NormalizedValue { return e.rec.NormalizedValue }

// Geometry returns the normalized bounding vertices of the first page
// reference, or nil when the record carries no geometry.
func (e *Entity) Geometry() []Vertex {
	pa := e.rec.PageAnchor
	if pa == nil || len(pa.PageRefs) == 0 {
		return nil
	}
	return pa.PageRefs[0].BoundingPoly.NormalizedVertices
}

// Properties returns the nested property records of a group entity.
func (e *Entity) Properties() []json.RawMessage { return e.rec.Properties }

// Text returns the normalized text when the service supplied one, falling
// back to the mention text.
func (e *Entity) Text() (string, bool) {
	if nv := e.rec.NormalizedValue; nv != nil && nv.Text != nil {
		return *nv.Text, true
	}
	if e.rec.MentionText != nil {
		return *e.rec.MentionText, true
	}
	return "", false
}

// Amount returns the money payload as an exact decimal.
func (e *Entity) Amount() (decimal.Decimal, bool) {
	if e.rec.NormalizedValue == nil {
		return decimal.Decimal{}, false
	}
	return e.rec.NormalizedValue.MoneyValue.Amount()
}

// Date returns the calendar-date payload.
func (e *Entity) Date() (time.Time, bool) {
	if e.rec.NormalizedValue == nil {
		return time.Time{}, false
	}
	return e.rec.NormalizedValue.DateValue.Date()
}

// TimeOfDay returns the clock-time payload anchored to base. A zero base
// anchors to the current date.
func (e *Entity) TimeOfDay(base time.Time) (time.Time, bool) {
	return e.rec.NormalizedValue.clock().At(base)
}
