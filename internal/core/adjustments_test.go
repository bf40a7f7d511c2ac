package core_test

import (
	"testing"

	"billing-tool/internal/core"
)

func pct(v string) *core.AdjustmentRule {
	return &core.AdjustmentRule{Kind: core.AdjustmentPercentage, Value: dec(v)}
}

func fixed(v string) *core.AdjustmentRule {
	return &core.AdjustmentRule{Kind: core.AdjustmentFixed, Value: dec(v)}
}

func TestApplyAdjustments(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     string
		tax          *core.AdjustmentRule
		discount     *core.AdjustmentRule
		wantTax      string
		wantDiscount string
		wantTotal    string
	}{
		{"no rules", "100", nil, nil, "0", "0", "100"},
		{"percentage tax and fixed discount", "200", pct("10"), fixed("15"), "20", "15", "205"},
		{"fixed tax", "100", fixed("7.50"), nil, "7.50", "0", "107.50"},
		{"percentage discount", "80", nil, pct("25"), "0", "20", "60"},
		{"zero-value rules contribute nothing", "100", pct("0"), fixed("0"), "0", "0", "100"},
		{"negative-value rules contribute nothing", "100", pct("-5"), fixed("-10"), "0", "0", "100"},
		{"excess fixed discount floors at zero", "10", nil, fixed("50"), "0", "50", "0"},
		{"excess percentage discount floors at zero", "100", nil, pct("150"), "0", "150", "0"},
		{"discount exactly cancels subtotal", "50", nil, fixed("50"), "0", "50", "0"},
		{"zero subtotal", "0", pct("10"), nil, "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ApplyAdjustments(dec(tt.subtotal), tt.tax, tt.discount)
			if !got.TaxAmount.Equal(dec(tt.wantTax)) {
				t.Errorf("tax = %s, want %s", got.TaxAmount, tt.wantTax)
			}
			if !got.DiscountAmount.Equal(dec(tt.wantDiscount)) {
				t.Errorf("discount = %s, want %s", got.DiscountAmount, tt.wantDiscount)
			}
			if !got.Total.Equal(dec(tt.wantTotal)) {
				t.Errorf("total = %s, want %s", got.Total, tt.wantTotal)
			}
			if got.Total.Sign() < 0 {
				t.Errorf("total went negative: %s", got.Total)
			}
		})
	}
}

func TestApplyAdjustments_IsPure(t *testing.T) {
	sub := dec("123.45")
	tax := pct("18")
	discount := fixed("9.99")

	first := core.ApplyAdjustments(sub, tax, discount)
	for i := 0; i < 3; i++ {
		again := core.ApplyAdjustments(sub, tax, discount)
		if !again.TaxAmount.Equal(first.TaxAmount) ||
			!again.DiscountAmount.Equal(first.DiscountAmount) ||
			!again.Total.Equal(first.Total) {
			t.Fatalf("call %d differed: %+v vs %+v", i, again, first)
		}
	}
}
