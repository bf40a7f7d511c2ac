package core

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Amount returns the monetary amount this rule contributes against the given
// subtotal. A nil rule or a non-positive value contributes zero.
func (r *AdjustmentRule) Amount(subtotal decimal.Decimal) decimal.Decimal {
	if r == nil || r.Value.Sign() <= 0 {
		return decimal.Zero
	}
	if r.Kind == AdjustmentPercentage {
		return subtotal.Mul(r.Value).Div(oneHundred)
	}
	return r.Value
}

// Adjustments is the breakdown produced by ApplyAdjustments.
type Adjustments struct {
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// ApplyAdjustments computes tax, discount, and the final total for a subtotal.
// The total is floored at zero: a discount may never produce a negative
// payable amount, and any excess is silently absorbed. Pure — the result
// depends only on the inputs.
func ApplyAdjustments(subtotal decimal.Decimal, taxRule, discountRule *AdjustmentRule) Adjustments {
	tax := taxRule.Amount(subtotal)
	discount := discountRule.Amount(subtotal)

	total := subtotal.Add(tax).Sub(discount)
	if total.Sign() < 0 {
		total = decimal.Zero
	}

	return Adjustments{
		TaxAmount:      tax,
		DiscountAmount: discount,
		Total:          total,
	}
}
