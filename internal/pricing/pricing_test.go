package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{UnitPrice: decimal.NewFromInt(600_000), Quantity: 2},
		{UnitPrice: decimal.NewFromInt(150_000), Quantity: 3},
	}

	subtotal, err := Subtotal(lines)

	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(1_650_000).Equal(subtotal))
}

func TestSubtotal_Empty(t *testing.T) {
	subtotal, err := Subtotal(nil)

	require.NoError(t, err)
	require.True(t, subtotal.IsZero())
}

func TestSubtotal_NegativePrice(t *testing.T) {
	lines := []Line{
		{UnitPrice: decimal.NewFromInt(-100), Quantity: 1},
	}

	_, err := Subtotal(lines)

	require.ErrorIs(t, err, ErrNegativeAmount)
}

func TestShipping(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"超過門檻免運", 2_000_001, 0},
		{"剛好在門檻要運費", 2_000_000, 30_000},
		{"低於門檻要運費", 1_800_000, 30_000},
		{"空車不收運費", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Shipping(decimal.NewFromInt(tt.subtotal), CartFreeShippingThreshold, CartShippingFee)
			require.True(t, decimal.NewFromInt(tt.want).Equal(got))
		})
	}
}

func TestCartTotals_Preview(t *testing.T) {
	// subtotal 1,800,000 低於2,000,000門檻: 運費30,000, 稅8% = 144,000
	lines := []Line{
		{UnitPrice: decimal.NewFromInt(900_000), Quantity: 2},
	}

	totals, err := CartTotals(lines)

	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(1_800_000).Equal(totals.Subtotal))
	require.True(t, decimal.NewFromInt(30_000).Equal(totals.Shipping))
	require.True(t, decimal.NewFromInt(144_000).Equal(totals.Tax))
	require.True(t, decimal.NewFromInt(1_974_000).Equal(totals.Total))
}

func TestCheckoutTotals(t *testing.T) {
	// subtotal 1,200,000 超過500,000門檻免運, 稅10% = 120,000
	lines := []Line{
		{UnitPrice: decimal.NewFromInt(600_000), Quantity: 2},
	}

	totals, err := CheckoutTotals(lines)

	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(1_200_000).Equal(totals.Subtotal))
	require.True(t, totals.Shipping.IsZero())
	require.True(t, decimal.NewFromInt(120_000).Equal(totals.Tax))
	require.True(t, decimal.NewFromInt(1_320_000).Equal(totals.Total))
}

func TestCheckoutTotals_BelowThreshold(t *testing.T) {
	lines := []Line{
		{UnitPrice: decimal.NewFromInt(200_000), Quantity: 2},
	}

	totals, err := CheckoutTotals(lines)

	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(30_000).Equal(totals.Shipping))
	require.True(t, decimal.NewFromInt(40_000).Equal(totals.Tax))
	// total = subtotal + shipping + tax 恆成立
	require.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Shipping).Add(totals.Tax)))
}

func TestTax_Rounding(t *testing.T) {
	// 8% of 1,111 = 88.88 -> 89
	got := Tax(decimal.NewFromInt(1_111), CartTaxRate)
	require.True(t, decimal.NewFromInt(89).Equal(got))
}
