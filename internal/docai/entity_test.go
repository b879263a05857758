package docai

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntity_Fields(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "supplier_name",
		"mentionText": "TRADER JOE'S",
		"confidence": 0.97,
		"normalizedValue": {"text": "Trader Joe's"},
		"pageAnchor": {"pageRefs": [{"boundingPoly": {"normalizedVertices": [
			{"x": 0.1, "y": 0.2}, {"x": 0.3, "y": 0.2}
		]}}]}
	}`)
	e := ParseEntity(raw)

	assert.Equal(t, "supplier_name", e.Type())
	assert.Equal(t, KindSupplierName, e.Kind())
	assert.Equal(t, "TRADER JOE'S", e.MentionText())
	assert.InDelta(t, 0.97, e.Confidence(), 1e-9)
	assert.JSONEq(t, string(raw), string(e.Raw()))

	text, ok := e.Text()
	require.True(t, ok)
	assert.Equal(t, "Trader Joe's", text)

	verts := e.Geometry()
	require.Len(t, verts, 2)
	assert.Equal(t, Vertex{X: 0.1, Y: 0.2}, verts[0])
}

func TestParseEntity_TextFallsBackToMention(t *testing.T) {
	e := ParseEntity(json.RawMessage(`{"type": "payment_type", "mentionText": "VISA"}`))
	text, ok := e.Text()
	require.True(t, ok)
	assert.Equal(t, "VISA", text)
}

func TestParseEntity_AbsentEverything(t *testing.T) {
	e := ParseEntity(json.RawMessage(`{}`))

	assert.Equal(t, "", e.Type())
	assert.Equal(t, KindOther, e.Kind())
	assert.Nil(t, e.Geometry())

	_, ok := e.Text()
	assert.False(t, ok)
	_, ok = e.Amount()
	assert.False(t, ok)
	_, ok = e.Date()
	assert.False(t, ok)
	_, ok = e.TimeOfDay(time.Time{})
	assert.False(t, ok)
}

func TestParseEntity_MalformedRecordStillYieldsEntity(t *testing.T) {
	raw := json.RawMessage(`"not an object"`)
	e := ParseEntity(raw)

	require.NotNil(t, e)
	assert.Equal(t, string(raw), string(e.Raw()))
	_, ok := e.Text()
	assert.False(t, ok)
}

func TestEntity_Amount(t *testing.T) {
	e := ParseEntity(json.RawMessage(`{
		"type": "total_amount",
		"normalizedValue": {"moneyValue": {"units": "162", "nanos": 440000000, "currencyCode": "USD"}}
	}`))

	amount, ok := e.Amount()
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.RequireFromString("162.44")))
	assert.Equal(t, "USD", e.Normalized().MoneyValue.CurrencyCode)
}

func TestEntity_Date(t *testing.T) {
	e := ParseEntity(json.RawMessage(`{
		"type": "receipt_date",
		"normalizedValue": {"dateValue": {"year": 2024, "month": 3, "day": 16}}
	}`))

	date, ok := e.Date()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), date)
}

func TestEntity_TimeOfDayAcceptsBothClockKeys(t *testing.T) {
	base := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	viaDatetime := ParseEntity(json.RawMessage(`{
		"type": "purchase_time",
		"normalizedValue": {"datetimeValue": {"hours": 13, "minutes": 15}}
	}`))
	viaTime := ParseEntity(json.RawMessage(`{
		"type": "purchase_time",
		"normalizedValue": {"timeValue": {"hours": 13, "minutes": 15}}
	}`))

	a, ok := viaDatetime.TimeOfDay(base)
	require.True(t, ok)
	b, ok := viaTime.TimeOfDay(base)
	require.True(t, ok)
	assert.Equal(t, a, b)
	assert.Equal(t, 13, a.Hour())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindTotalAmount, KindOf("total_amount"))
	assert.Equal(t, KindLineItem, KindOf("line_item"))
	assert.Equal(t, KindLineItemUnitPrice, KindOf("line_item/unit_price"))
	assert.Equal(t, KindOther, KindOf("something_new"))
	assert.Equal(t, KindOther, KindOf(""))
}
