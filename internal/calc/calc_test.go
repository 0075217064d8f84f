package calc

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	assert.Equal(t, 12.5, Coerce("12.5"))
	assert.Equal(t, 12.5, Coerce("  12.5  "))
	assert.Equal(t, 0.0, Coerce(""))
	assert.Equal(t, 0.0, Coerce("abc"))
	assert.Equal(t, 0.0, Coerce("12,5"))
	assert.Equal(t, -3.0, Coerce("-3"))
	assert.Equal(t, 0.0, Coerce("NaN"))
	assert.Equal(t, 0.0, Coerce("+Inf"))
}

func TestAmountUnmarshal(t *testing.T) {
	var payload struct {
		UnitCost Amount `json:"unitCost"`
		Quantity Amount `json:"quantity"`
		TaxRate  Amount `json:"taxRate"`
	}
	err := json.Unmarshal([]byte(`{"unitCost":"19.99","quantity":3,"taxRate":""}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, Amount(19.99), payload.UnitCost)
	assert.Equal(t, Amount(3), payload.Quantity)
	assert.Equal(t, Amount(0), payload.TaxRate)

	err = json.Unmarshal([]byte(`{"unitCost":null,"quantity":"garbage"}`), &payload)
	require.NoError(t, err)
	assert.Equal(t, Amount(0), payload.UnitCost)
	assert.Equal(t, Amount(0), payload.Quantity)
}

func TestLineAmount(t *testing.T) {
	assert.Equal(t, 150.0, LineAmount(50, 3))
	assert.Equal(t, 0.0, LineAmount(math.NaN(), 3))
	assert.Equal(t, 0.0, LineAmount(50, math.Inf(1)))
}

func TestSubtotalSumsAllLines(t *testing.T) {
	items := []LineInput{
		{UnitCost: 100, Quantity: 2},
		{UnitCost: 49.5, Quantity: 4},
		{UnitCost: 0, Quantity: 9},
	}
	assert.InDelta(t, 398, Subtotal(items), 1e-9)
	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestComputeTotals(t *testing.T) {
	// Items totaling 1000, tax 10%, discount 50, shipping 20 -> 1070.
	items := []LineInput{
		{UnitCost: 250, Quantity: 2},
		{UnitCost: 100, Quantity: 5},
	}
	totals := Compute(items, 10, 50, 20)
	assert.InDelta(t, 1000, totals.Subtotal, 1e-9)
	assert.InDelta(t, 100, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 1070, totals.Total, 1e-9)
}

func TestComputeZeroRateAndExtras(t *testing.T) {
	items := []LineInput{{UnitCost: 33.33, Quantity: 3}}
	totals := Compute(items, 0, 0, 0)
	assert.InDelta(t, totals.Subtotal, totals.Total, 1e-9)
	assert.Equal(t, 0.0, totals.TaxAmount)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,070.00 USD", Format(1070, "USD"))
	assert.Equal(t, "999.90 LKR", Format(999.9, "LKR"))
	assert.Equal(t, "0.00", Format(math.NaN(), ""))
	assert.Equal(t, "12,345,678.50 EUR", Format(12345678.5, "EUR"))
}
