// Package pricing 純計算，不碰任何儲存
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount 單價或數量為負屬於資料完整性問題，這裡只拒絕不修正
var ErrNegativeAmount = errors.New("negative price or quantity")

// 購物車預覽與結帳刻意使用不同的稅率與免運門檻，
// 兩組常數來自不同的業務情境，確認統一前不要合併
var (
	// 購物車預覽: 滿 2,000,000 免運，否則運費 30,000，稅率 8%
	CartFreeShippingThreshold = decimal.NewFromInt(2_000_000)
	CartShippingFee           = decimal.NewFromInt(30_000)
	CartTaxRate               = decimal.NewFromFloat(0.08)

	// 結帳: 滿 500,000 免運，否則運費 30,000，稅率 10%
	CheckoutFreeShippingThreshold = decimal.NewFromInt(500_000)
	CheckoutShippingFee           = decimal.NewFromInt(30_000)
	CheckoutTaxRate               = decimal.NewFromFloat(0.10)
)

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func Subtotal(lines []Line) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		if line.UnitPrice.IsNegative() || line.Quantity < 0 {
			return decimal.Zero, ErrNegativeAmount
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal, nil
}

// Shipping subtotal超過門檻免運，為0時也不收運費
func Shipping(subtotal, threshold, fee decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(threshold) {
		return decimal.Zero
	}
	if subtotal.IsPositive() {
		return fee
	}
	return decimal.Zero
}

// Tax 四捨五入到整數金額
func Tax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(rate).Round(0)
}

func compute(lines []Line, threshold, fee, rate decimal.Decimal) (Totals, error) {
	subtotal, err := Subtotal(lines)
	if err != nil {
		return Totals{}, err
	}
	shipping := Shipping(subtotal, threshold, fee)
	tax := Tax(subtotal, rate)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}, nil
}

// CartTotals 購物車預覽金額
func CartTotals(lines []Line) (Totals, error) {
	return compute(lines, CartFreeShippingThreshold, CartShippingFee, CartTaxRate)
}

// CheckoutTotals 訂單結帳金額
func CheckoutTotals(lines []Line) (Totals, error) {
	return compute(lines, CheckoutFreeShippingThreshold, CheckoutShippingFee, CheckoutTaxRate)
}
