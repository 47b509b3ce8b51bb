package Billing

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// dec converts a float to decimal, treating NaN/Inf as zero. Validation
// rejects non-finite input before persistence; this keeps the math total.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// clampPercent constrains a percentage to [0, 100].
func clampPercent(p float64) decimal.Decimal {
	if math.IsNaN(p) || p < 0 {
		return decimal.Zero
	}
	if p > 100 {
		return hundred
	}
	return decimal.NewFromFloat(p)
}

// LineTotal computes one item's contribution to the invoice: quantity times
// rate, minus the percentage discount, plus tax on the discounted amount.
// The discount is always applied before tax; no rounding happens here,
// currency rounding is a display concern.
func LineTotal(item LineItem) decimal.Decimal {
	_, _, _, total := lineAmounts(item)
	return total
}

func lineAmounts(item LineItem) (subtotal, discount, tax, total decimal.Decimal) {
	subtotal = dec(item.Quantity).Mul(dec(item.Rate))
	discount = subtotal.Mul(clampPercent(item.Discount)).Div(hundred)
	afterDiscount := subtotal.Sub(discount)
	tax = afterDiscount.Mul(clampPercent(item.TaxRate)).Div(hundred)
	total = afterDiscount.Add(tax)
	return
}

// Totals is the invoice-level aggregation of its line items.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	Total         decimal.Decimal `json:"total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// CalculateTotals sums the line items and applies the invoice-level
// adjustment once, after aggregation. The adjustment may be negative, is
// never taxed, and is not distributed across items. The result depends only
// on the inputs.
func CalculateTotals(items []LineItem, adjustment float64) Totals {
	var t Totals
	for _, item := range items {
		sub, disc, tax, total := lineAmounts(item)
		t.Subtotal = t.Subtotal.Add(sub)
		t.DiscountTotal = t.DiscountTotal.Add(disc)
		t.TaxTotal = t.TaxTotal.Add(tax)
		t.Total = t.Total.Add(total)
	}
	t.GrandTotal = t.Total.Add(dec(adjustment))
	return t
}
