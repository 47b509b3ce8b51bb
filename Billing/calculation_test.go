package Billing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want decimal.Decimal
	}{
		{
			name: "discount and tax",
			item: LineItem{Quantity: 2, Rate: 100, Discount: 10, TaxRate: 10},
			want: d("198"),
		},
		{
			name: "half discount full tax",
			item: LineItem{Quantity: 1, Rate: 100, Discount: 50, TaxRate: 100},
			want: d("100"),
		},
		{
			name: "no intermediate rounding",
			item: LineItem{Quantity: 3, Rate: 99.99, Discount: 15, TaxRate: 8.25},
			want: d("276.00989625"),
		},
		{
			name: "plain quantity times rate",
			item: LineItem{Quantity: 4, Rate: 25.5},
			want: d("102"),
		},
		{
			name: "zero quantity",
			item: LineItem{Quantity: 0, Rate: 500, TaxRate: 7},
			want: d("0"),
		},
		{
			name: "zero rate",
			item: LineItem{Quantity: 3, Rate: 0, Discount: 10},
			want: d("0"),
		},
		{
			name: "negative discount clamped to zero",
			item: LineItem{Quantity: 1, Rate: 100, Discount: -10},
			want: d("100"),
		},
		{
			name: "negative tax rate clamped to zero",
			item: LineItem{Quantity: 1, Rate: 100, TaxRate: -5},
			want: d("100"),
		},
		{
			name: "NaN rate treated as zero",
			item: LineItem{Quantity: 1, Rate: math.NaN()},
			want: d("0"),
		},
		{
			name: "infinite quantity treated as zero",
			item: LineItem{Quantity: math.Inf(1), Rate: 10},
			want: d("0"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(tt.item)
			if !got.Equal(tt.want) {
				t.Errorf("LineTotal() = %s, want %s", got, tt.want)
			}
		})
	}
}

// Tax must be computed on the discounted amount, not the original subtotal.
// The line total alone cannot distinguish the two orders (multiplication
// commutes), so this pins the ordering through the reported tax amount.
func TestTaxComputedOnDiscountedAmount(t *testing.T) {
	items := []LineItem{{Description: "Panels", Quantity: 3, Rate: 99.99, Discount: 15, TaxRate: 8.25}}
	totals := CalculateTotals(items, 0)

	if want := d("21.03539625"); !totals.TaxTotal.Equal(want) {
		t.Errorf("TaxTotal = %s, want %s (tax on discounted base)", totals.TaxTotal, want)
	}
	// Taxing the pre-discount subtotal would have given 24.747525.
	if taxFirst := d("24.747525"); totals.TaxTotal.Equal(taxFirst) {
		t.Error("TaxTotal matches tax-before-discount ordering")
	}
	if want := d("44.9955"); !totals.DiscountTotal.Equal(want) {
		t.Errorf("DiscountTotal = %s, want %s", totals.DiscountTotal, want)
	}
}

func TestCalculateTotalsZeroAdjustment(t *testing.T) {
	items := []LineItem{
		{Quantity: 2, Rate: 149.5, Discount: 5, TaxRate: 8.25},
		{Quantity: 1, Rate: 1200, TaxRate: 7},
		{Quantity: 10, Rate: 3.33},
	}

	totals := CalculateTotals(items, 0)

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineTotal(item))
	}
	if !totals.Total.Equal(sum) {
		t.Errorf("Total = %s, want sum of line totals %s", totals.Total, sum)
	}
	if !totals.GrandTotal.Equal(totals.Total) {
		t.Errorf("GrandTotal = %s, want %s with zero adjustment", totals.GrandTotal, totals.Total)
	}
}

func TestAdjustmentAppliedOnceAndUntaxed(t *testing.T) {
	items := []LineItem{
		{Quantity: 1, Rate: 5000, TaxRate: 7},
		{Quantity: 2, Rate: 75, Discount: 20, TaxRate: 8.25},
	}

	base := CalculateTotals(items, 0)
	for _, adj := range []float64{50, -50, 0.01, -1234.56} {
		got := CalculateTotals(items, adj)
		want := base.GrandTotal.Add(decimal.NewFromFloat(adj))
		if !got.GrandTotal.Equal(want) {
			t.Errorf("adjustment %v: GrandTotal = %s, want %s", adj, got.GrandTotal, want)
		}
		// The adjustment must never leak into the item aggregates.
		if !got.Subtotal.Equal(base.Subtotal) || !got.TaxTotal.Equal(base.TaxTotal) || !got.Total.Equal(base.Total) {
			t.Errorf("adjustment %v altered item aggregates", adj)
		}
	}
}

func TestCalculateTotalsDeterministic(t *testing.T) {
	items := []LineItem{
		{Quantity: 3, Rate: 99.99, Discount: 15, TaxRate: 8.25},
		{Quantity: 1, Rate: 150},
	}

	first := CalculateTotals(items, -50)
	second := CalculateTotals(items, -50)

	if first.Subtotal.String() != second.Subtotal.String() ||
		first.DiscountTotal.String() != second.DiscountTotal.String() ||
		first.TaxTotal.String() != second.TaxTotal.String() ||
		first.Total.String() != second.Total.String() ||
		first.GrandTotal.String() != second.GrandTotal.String() {
		t.Errorf("repeated calculation differs: %+v vs %+v", first, second)
	}
}

func TestInstallationInvoiceScenario(t *testing.T) {
	items := []LineItem{
		{Description: "Install", Quantity: 1, Rate: 5000, Discount: 0, TaxRate: 7},
		{Description: "Permit fee", Quantity: 1, Rate: 150, Discount: 0, TaxRate: 0},
	}

	totals := CalculateTotals(items, -50)

	if want := d("5150"); !totals.Subtotal.Equal(want) {
		t.Errorf("Subtotal = %s, want %s", totals.Subtotal, want)
	}
	if want := d("5500"); !totals.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", totals.Total, want)
	}
	if want := d("5450"); !totals.GrandTotal.Equal(want) {
		t.Errorf("GrandTotal = %s, want %s", totals.GrandTotal, want)
	}
}

func TestCalculateTotalsNoItems(t *testing.T) {
	totals := CalculateTotals(nil, 25)
	if !totals.Subtotal.Equal(decimal.Zero) || !totals.Total.Equal(decimal.Zero) {
		t.Errorf("empty invoice should have zero item aggregates, got %+v", totals)
	}
	if want := d("25"); !totals.GrandTotal.Equal(want) {
		t.Errorf("GrandTotal = %s, want %s", totals.GrandTotal, want)
	}
}
