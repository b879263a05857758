package docai

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Document is one parsed extraction output: the plain entities in source
// order, the rebuilt line items in group order, and the verbatim raw input.
// Documents are immutable and safe for concurrent readers.
type Document struct {
	entities  []*Entity
	lineItems []*LineItem
	raw       json.RawMessage
}

// NewDocument builds a Document from already-split entity and line-item
// lists. The raw input is retained verbatim.
func NewDocument(entities []*Entity, lineItems []*LineItem, raw json.RawMessage) *Document {
	return &Document{entities: entities, lineItems: lineItems, raw: cloneRaw(raw)}
}

// Entities returns the plain entities in source order, excluding line-item
// group records.
func (d *Document) Entities() []*Entity { return d.entities }

// LineItems returns the rebuilt line items in source order of their groups.
func (d *Document) LineItems() []*LineItem { return d.lineItems }

// Raw returns the verbatim input the document was built from.
func (d *Document) Raw() json.RawMessage { return d.raw }

// FindEntity returns the first entity with the given type tag, in source
// order, or nil when none matches. Matching is case-sensitive.
func (d *Document) FindEntity(entityType string) *Entity {
	for _, e := range d.entities {
		if e.Type() == entityType {
			return e
		}
	}
	return nil
}

// FindEntities returns every entity with the given type tag, in source order.
// The result is never nil.
func (d *Document) FindEntities(entityType string) []*Entity {
	matches := []*Entity{}
	for _, e := range d.entities {
		if e.Type() == entityType {
			matches = append(matches, e)
		}
	}
	return matches
}

func (d *Document) textOf(entityType string) (string, bool) {
	if e := d.FindEntity(entityType); e != nil {
		return e.Text()
	}
	return "", false
}

func (d *Document) amountOf(entityType string) (decimal.Decimal, bool) {
	if e := d.FindEntity(entityType); e != nil {
		return e.Amount()
	}
	return decimal.Decimal{}, false
}

// SupplierName returns the supplier name text.
func (d *Document) SupplierName() (string, bool) { return d.textOf(TypeSupplierName) }

// SupplierAddress returns the supplier address as the service normalized it.
// Component-level address parsing is out of scope.
func (d *Document) SupplierAddress() (string, bool) { return d.textOf(TypeSupplierAddress) }

// SupplierPhone returns the supplier phone text.
func (d *Document) SupplierPhone() (string, bool) { return d.textOf(TypeSupplierPhone) }

// PaymentType returns the payment type text.
func (d *Document) PaymentType() (string, bool) { return d.textOf(TypePaymentType) }

// CardLastFour returns the last four digits of the payment card.
func (d *Document) CardLastFour() (string, bool) { return d.textOf(TypeCardLastFour) }

// PaymentAuthorizationID returns the payment authorization identifier.
func (d *Document) PaymentAuthorizationID() (string, bool) { return d.textOf(TypePaymentAuthID) }

// ReceiptDate returns the receipt date.
func (d *Document) ReceiptDate() (time.Time, bool) {
	if e := d.FindEntity(TypeReceiptDate); e != nil {
		return e.Date()
	}
	return time.Time{}, false
}

// PurchaseTime returns the purchase time anchored to the receipt date when
// one is present, else to the current date.
func (d *Document) PurchaseTime() (time.Time, bool) {
	e := d.FindEntity(TypePurchaseTime)
	if e == nil {
		return time.Time{}, false
	}
	base, _ := d.ReceiptDate()
	return e.TimeOfDay(base)
}

// TotalAmount returns the document total as an exact decimal.
func (d *Document) TotalAmount() (decimal.Decimal, bool) { return d.amountOf(TypeTotalAmount) }

// TotalTaxAmount returns the total tax as an exact decimal.
func (d *Document) TotalTaxAmount() (decimal.Decimal, bool) { return d.amountOf(TypeTotalTaxAmount) }

// Currency returns the document currency: the currency entity's text when one
// exists, else the currency code embedded in the total amount's money
// payload.
func (d *Document) Currency() (string, bool) {
	if e := d.FindEntity(TypeCurrency); e != nil {
		if text, ok := e.Text(); ok {
			return text, true
		}
	}
	if e := d.FindEntity(TypeTotalAmount); e != nil {
		if nv := e.Normalized(); nv != nil && nv.MoneyValue != nil && nv.MoneyValue.CurrencyCode != "" {
			return nv.MoneyValue.CurrencyCode, true
		}
	}
	return "", false
}
