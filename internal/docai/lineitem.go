package docai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// QuantityKind tags how a line-item quantity was parsed.
type QuantityKind int

const (
	QuantityInt QuantityKind = iota
	QuantityFloat
	QuantityText
)

// Quantity holds a parsed line-item quantity. An integer parse wins over a
// float parse, and text that parses as neither is kept verbatim, so callers
// keep the numeric-vs-string distinction the source implied.
type Quantity struct {
	Kind  QuantityKind
	Int   int64
	Float float64
	Text  string
}

// ParseQuantity applies the int, then float, then raw-text precedence. It
// never fails.
func ParseQuantity(s string) Quantity {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return Quantity{Kind: QuantityInt, Int: n}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Quantity{Kind: QuantityFloat, Float: f}
	}
	return Quantity{Kind: QuantityText, Text: s}
}

// Decimal returns the numeric quantity as an exact decimal for the amount
// back-fill. Text quantities yield ok=false.
func (q Quantity) Decimal() (decimal.Decimal, bool) {
	switch q.Kind {
	case QuantityInt:
		return decimal.NewFromInt(q.Int), true
	case QuantityFloat:
		return decimal.NewFromFloat(q.Float), true
	}
	return decimal.Decimal{}, false
}

func (q Quantity) String() string {
	switch q.Kind {
	case QuantityInt:
		return strconv.FormatInt(q.Int, 10)
	case QuantityFloat:
		return strconv.FormatFloat(q.Float, 'f', -1, 64)
	}
	return q.Text
}

// MarshalJSON emits numeric quantities as JSON numbers and text quantities as
// JSON strings.
func (q Quantity) MarshalJSON() ([]byte, error) {
	switch q.Kind {
	case QuantityInt:
		return json.Marshal(q.Int)
	case QuantityFloat:
		return json.Marshal(q.Float)
	}
	return json.Marshal(q.Text)
}

// UnmarshalJSON accepts either form MarshalJSON emits and reapplies the parse
// precedence.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*q = Quantity{Kind: QuantityText, Text: s}
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("quantity: expected string or number, got %s", data)
	}
	*q = ParseQuantity(num.String())
	return nil
}

// Issue records one non-fatal fault encountered while building a line item.
type Issue struct {
	Err error
}

func (i Issue) Error() string { return i.Err.Error() }

// LineItem is one grouped purchase line rebuilt from a line_item group record
// and its nested property records. Nil fields were not present in the source.
// It is immutable after construction.
type LineItem struct {
	Description *string
	Quantity    *Quantity
	Unit        *string
	UnitPrice   *decimal.Decimal
	Amount      *decimal.Decimal
	ProductCode *string

	raw        json.RawMessage
	properties []json.RawMessage
	issues     []Issue
}

// Raw returns the verbatim group record the line item was built from.
func (li *LineItem) Raw() json.RawMessage { return li.raw }

// RawProperties returns the verbatim nested property records.
func (li *LineItem) RawProperties() []json.RawMessage { return li.properties }

// Issues returns the non-fatal faults recorded during construction. An empty
// result means every property parsed cleanly.
func (li *LineItem) Issues() []Issue { return li.issues }

// BuildLineItem assembles a LineItem from one line_item group record.
// Construction is best-effort and never fails: a fault in one property is
// recorded as an Issue, the field stays absent, and the remaining properties
// are still applied. When issues occurred and no description was set, the
// group record's own text becomes the description, so a degraded line still
// identifies itself.
func BuildLineItem(raw json.RawMessage) *LineItem {
	group := ParseEntity(raw)
	li := &LineItem{raw: group.Raw(), properties: group.Properties()}

	for _, prop := range group.Properties() {
		li.applyProperty(prop)
	}

	if li.Amount == nil && li.UnitPrice != nil && li.Quantity != nil {
		if q, ok := li.Quantity.Decimal(); ok {
			amount := li.UnitPrice.Mul(q)
			li.Amount = &amount
		}
	}

	if len(li.issues) > 0 && li.Description == nil {
		if text, ok := group.Text(); ok {
			li.Description = &text
		}
	}
	return li
}

func (li *LineItem) applyProperty(raw json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			li.issues = append(li.issues, Issue{Err: fmt.Errorf("line item property: %v", r)})
		}
	}()

	e, err := parseEntity(raw)
	if err != nil {
		li.issues = append(li.issues, Issue{Err: fmt.Errorf("line item property: %w", err)})
		return
	}

	switch e.Kind() {
	case KindLineItemDescription:
		if text, ok := e.Text(); ok {
			li.Description = &text
		}
	case KindLineItemQuantity:
		if text, ok := e.Text(); ok {
			q := ParseQuantity(text)
			li.Quantity = &q
		}
	case KindLineItemUnit:
		if text, ok := e.Text(); ok {
			li.Unit = &text
		}
	case KindLineItemUnitPrice:
		if amount, ok := e.Amount(); ok {
			li.UnitPrice = &amount
		}
	case KindLineItemAmount:
		if amount, ok := e.Amount(); ok {
			li.Amount = &amount
		}
	case KindLineItemProductCode:
		if text, ok := e.Text(); ok {
			li.ProductCode = &text
		}
	}
	// KindOther properties pass through in RawProperties untouched.
}
