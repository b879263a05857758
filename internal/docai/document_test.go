package docai

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entitiesFrom(t *testing.T, records ...string) []*Entity {
	t.Helper()
	out := make([]*Entity, 0, len(records))
	for _, rec := range records {
		out = append(out, ParseEntity(json.RawMessage(rec)))
	}
	return out
}

func TestDocument_FindEntity(t *testing.T) {
	doc := NewDocument(entitiesFrom(t,
		`{"type": "supplier_name", "mentionText": "first"}`,
		`{"type": "total_amount"}`,
		`{"type": "supplier_name", "mentionText": "second"}`,
	), nil, nil)

	e := doc.FindEntity("supplier_name")
	require.NotNil(t, e)
	assert.Equal(t, "first", e.MentionText())

	assert.Nil(t, doc.FindEntity("currency"))

	// Pure lookup: same result on repeated calls.
	again := doc.FindEntity("supplier_name")
	assert.Same(t, e, again)
}

func TestDocument_FindEntities(t *testing.T) {
	doc := NewDocument(entitiesFrom(t,
		`{"type": "supplier_name", "mentionText": "first"}`,
		`{"type": "total_amount"}`,
		`{"type": "supplier_name", "mentionText": "second"}`,
	), nil, nil)

	all := doc.FindEntities("supplier_name")
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].MentionText())
	assert.Equal(t, "second", all[1].MentionText())

	none := doc.FindEntities("currency")
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDocument_ConvenienceAccessors(t *testing.T) {
	doc := NewDocument(entitiesFrom(t,
		`{"type": "supplier_name", "mentionText": "TRADER JOE'S", "normalizedValue": {"text": "Trader Joe's"}}`,
		`{"type": "supplier_address", "normalizedValue": {"text": "401 Bay St, San Francisco"}}`,
		`{"type": "supplier_phone", "mentionText": "(415) 555-0199"}`,
		`{"type": "receipt_date", "normalizedValue": {"dateValue": {"year": 2024, "month": 3, "day": 16}}}`,
		`{"type": "purchase_time", "normalizedValue": {"datetimeValue": {"hours": 13, "minutes": 15}}}`,
		`{"type": "total_amount", "normalizedValue": {"moneyValue": {"units": "162", "nanos": 440000000, "currencyCode": "USD"}}}`,
		`{"type": "total_tax_amount", "normalizedValue": {"moneyValue": {"units": "9", "nanos": 120000000}}}`,
		`{"type": "payment_type", "mentionText": "VISA"}`,
		`{"type": "credit_card_last_four_digits", "mentionText": "4242"}`,
		`{"type": "payment_authorization_id", "mentionText": "AUTH-77"}`,
	), nil, nil)

	name, ok := doc.SupplierName()
	require.True(t, ok)
	assert.Equal(t, "Trader Joe's", name)

	addr, ok := doc.SupplierAddress()
	require.True(t, ok)
	assert.Equal(t, "401 Bay St, San Francisco", addr)

	phone, ok := doc.SupplierPhone()
	require.True(t, ok)
	assert.Equal(t, "(415) 555-0199", phone)

	date, ok := doc.ReceiptDate()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), date)

	// Purchase time is anchored to the receipt date.
	purchase, ok := doc.PurchaseTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 16, 13, 15, 0, 0, time.UTC), purchase)

	total, ok := doc.TotalAmount()
	require.True(t, ok)
	assert.True(t, total.Equal(decimal.RequireFromString("162.44")))

	tax, ok := doc.TotalTaxAmount()
	require.True(t, ok)
	assert.True(t, tax.Equal(decimal.RequireFromString("9.12")))

	payment, ok := doc.PaymentType()
	require.True(t, ok)
	assert.Equal(t, "VISA", payment)

	last4, ok := doc.CardLastFour()
	require.True(t, ok)
	assert.Equal(t, "4242", last4)

	auth, ok := doc.PaymentAuthorizationID()
	require.True(t, ok)
	assert.Equal(t, "AUTH-77", auth)

	assert.Empty(t, doc.LineItems())
}

func TestDocument_AccessorsAbsent(t *testing.T) {
	doc := NewDocument(nil, nil, nil)

	_, ok := doc.SupplierName()
	assert.False(t, ok)
	_, ok = doc.ReceiptDate()
	assert.False(t, ok)
	_, ok = doc.PurchaseTime()
	assert.False(t, ok)
	_, ok = doc.TotalAmount()
	assert.False(t, ok)
	_, ok = doc.Currency()
	assert.False(t, ok)
}

func TestDocument_CurrencyFromEntity(t *testing.T) {
	doc := NewDocument(entitiesFrom(t,
		`{"type": "currency", "normalizedValue": {"text": "EUR"}}`,
		`{"type": "total_amount", "normalizedValue": {"moneyValue": {"units": "10", "currencyCode": "USD"}}}`,
	), nil, nil)

	currency, ok := doc.Currency()
	require.True(t, ok)
	assert.Equal(t, "EUR", currency)
}

func TestDocument_CurrencyInferredFromTotalAmount(t *testing.T) {
	doc := NewDocument(entitiesFrom(t,
		`{"type": "total_amount", "normalizedValue": {"moneyValue": {"units": "162", "nanos": 440000000, "currencyCode": "USD"}}}`,
	), nil, nil)

	currency, ok := doc.Currency()
	require.True(t, ok)
	assert.Equal(t, "USD", currency)
}

func TestDocument_PurchaseTimeWithoutReceiptDate(t *testing.T) {
	doc := NewDocument(entitiesFrom(t,
		`{"type": "purchase_time", "normalizedValue": {"datetimeValue": {"hours": 13}}}`,
	), nil, nil)

	purchase, ok := doc.PurchaseTime()
	require.True(t, ok)
	now := time.Now().UTC()
	assert.Equal(t, now.Year(), purchase.Year())
	assert.Equal(t, now.YearDay(), purchase.YearDay())
	assert.Equal(t, 13, purchase.Hour())
}

func TestDocument_RawRetained(t *testing.T) {
	raw := json.RawMessage(`{"document": {"entities": []}}`)
	doc := NewDocument(nil, nil, raw)
	assert.JSONEq(t, string(raw), string(doc.Raw()))
}
