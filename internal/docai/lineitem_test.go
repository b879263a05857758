package docai

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		kind QuantityKind
	}{
		{"5", QuantityInt},
		{" 12 ", QuantityInt},
		{"2.5", QuantityFloat},
		{"1e2", QuantityFloat},
		{"two", QuantityText},
		{"", QuantityText},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.kind, ParseQuantity(tt.in).Kind)
		})
	}

	q := ParseQuantity("5")
	assert.Equal(t, int64(5), q.Int)
	q = ParseQuantity("2.5")
	assert.Equal(t, 2.5, q.Float)
	q = ParseQuantity("two")
	assert.Equal(t, "two", q.Text)
}

func TestQuantity_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(ParseQuantity("5"))
	require.NoError(t, err)
	assert.Equal(t, "5", string(data))

	data, err = json.Marshal(ParseQuantity("2.5"))
	require.NoError(t, err)
	assert.Equal(t, "2.5", string(data))

	data, err = json.Marshal(ParseQuantity("two"))
	require.NoError(t, err)
	assert.Equal(t, `"two"`, string(data))
}

func TestBuildLineItem_AllProperties(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "line_item",
		"mentionText": "BANANA EACH 3 1.15",
		"properties": [
			{"type": "line_item/description", "mentionText": "BANANA EACH"},
			{"type": "line_item/quantity", "mentionText": "3"},
			{"type": "line_item/unit", "mentionText": "ea"},
			{"type": "line_item/unit_price", "normalizedValue": {"moneyValue": {"units": "0", "nanos": 390000000}}},
			{"type": "line_item/amount", "normalizedValue": {"moneyValue": {"units": "1", "nanos": 170000000}}},
			{"type": "line_item/product_code", "mentionText": "4011"}
		]
	}`)
	li := BuildLineItem(raw)

	require.NotNil(t, li.Description)
	assert.Equal(t, "BANANA EACH", *li.Description)
	require.NotNil(t, li.Quantity)
	assert.Equal(t, QuantityInt, li.Quantity.Kind)
	require.NotNil(t, li.Unit)
	assert.Equal(t, "ea", *li.Unit)
	require.NotNil(t, li.UnitPrice)
	assert.True(t, li.UnitPrice.Equal(decimal.RequireFromString("0.39")))
	require.NotNil(t, li.Amount)
	assert.True(t, li.Amount.Equal(decimal.RequireFromString("1.17")))
	require.NotNil(t, li.ProductCode)
	assert.Equal(t, "4011", *li.ProductCode)
	assert.Empty(t, li.Issues())
	assert.Len(t, li.RawProperties(), 6)
}

func TestBuildLineItem_AmountBackfill(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "line_item",
		"properties": [
			{"type": "line_item/quantity", "mentionText": "3"},
			{"type": "line_item/unit_price", "normalizedValue": {"moneyValue": {"units": "2", "nanos": 500000000}}}
		]
	}`)
	li := BuildLineItem(raw)

	require.NotNil(t, li.Amount)
	assert.True(t, li.Amount.Equal(decimal.RequireFromString("7.50")), "got %s", li.Amount)
}

func TestBuildLineItem_NoBackfillForTextQuantity(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "line_item",
		"properties": [
			{"type": "line_item/quantity", "mentionText": "two"},
			{"type": "line_item/unit_price", "normalizedValue": {"moneyValue": {"units": "2", "nanos": 500000000}}}
		]
	}`)
	li := BuildLineItem(raw)

	assert.Nil(t, li.Amount)
	require.NotNil(t, li.Quantity)
	assert.Equal(t, "two", li.Quantity.Text)
}

func TestBuildLineItem_ExplicitAmountWins(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "line_item",
		"properties": [
			{"type": "line_item/quantity", "mentionText": "3"},
			{"type": "line_item/unit_price", "normalizedValue": {"moneyValue": {"units": "2", "nanos": 500000000}}},
			{"type": "line_item/amount", "normalizedValue": {"moneyValue": {"units": "7", "nanos": 0}}}
		]
	}`)
	li := BuildLineItem(raw)

	require.NotNil(t, li.Amount)
	assert.True(t, li.Amount.Equal(decimal.RequireFromString("7")))
}

func TestBuildLineItem_UnknownPropertyIgnored(t *testing.T) {
	raw := json.RawMessage(`{
		"type": "line_item",
		"properties": [
			{"type": "line_item/weight", "mentionText": "1.2kg"},
			{"type": "line_item/description", "mentionText": "APPLES"}
		]
	}`)
	li := BuildLineItem(raw)

	require.NotNil(t, li.Description)
	assert.Equal(t, "APPLES", *li.Description)
	assert.Empty(t, li.Issues())
	assert.Len(t, li.RawProperties(), 2)
}

func TestBuildLineItem_FaultFallsBackToGroupText(t *testing.T) {
	// Second property is not an entity object; the fault is recorded and the
	// group's own text becomes the description.
	raw := json.RawMessage(`{
		"type": "line_item",
		"mentionText": "MYSTERY ITEM 4.99",
		"properties": [
			{"type": "line_item/amount", "normalizedValue": {"moneyValue": {"units": "4", "nanos": 990000000}}},
			"not an object"
		]
	}`)
	li := BuildLineItem(raw)

	require.NotNil(t, li.Amount)
	assert.True(t, li.Amount.Equal(decimal.RequireFromString("4.99")))
	require.NotNil(t, li.Description)
	assert.Equal(t, "MYSTERY ITEM 4.99", *li.Description)
	assert.Len(t, li.Issues(), 1)
}

func TestBuildLineItem_EmptyGroup(t *testing.T) {
	li := BuildLineItem(json.RawMessage(`{"type": "line_item", "mentionText": "SOMETHING"}`))

	assert.Nil(t, li.Description)
	assert.Nil(t, li.Quantity)
	assert.Nil(t, li.Amount)
	assert.Empty(t, li.Issues())
	assert.Empty(t, li.RawProperties())
}
