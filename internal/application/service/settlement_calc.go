package service

import (
	"github.com/jraflores/tindahan-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// CartLine is one priced line of a cart being settled.
type CartLine struct {
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
}

// Breakdown is the monetary result of settling a cart under a discount
// policy. All amounts are rounded to 2 decimal places, half-up; the
// intermediate line math is carried at full precision.
type Breakdown struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	AfterDiscount   decimal.Decimal `json:"after_discount"`
	VatExemptAmount decimal.Decimal `json:"vat_exempt_amount"`
	VatableAmount   decimal.Decimal `json:"vatable_amount"`
	VatAmount       decimal.Decimal `json:"vat_amount"`
	Total           decimal.Decimal `json:"total"`
}

// ComputeBreakdown derives the settlement breakdown for the cart.
//
// taxRate is a percent (0..100) applied to the discounted amount when the
// policy is not VAT-exempt. The reference deployment runs with rate 0; the
// rate is an explicit input rather than a constant so it can be re-enabled
// through configuration alone.
func ComputeBreakdown(lines []CartLine, policy *DiscountPolicy, taxRate decimal.Decimal) (*Breakdown, error) {
	if len(lines) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	subtotal := decimal.Zero
	for i, line := range lines {
		if line.UnitPrice.IsNegative() {
			return nil, apperror.NewNegativeLineError("unit_price", i)
		}
		if line.Quantity.IsNegative() {
			return nil, apperror.NewNegativeLineError("quantity", i)
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(line.Quantity))
	}

	// Round the breakdown fields, then derive the dependent amounts from the
	// rounded values so the payload reconciles to the centavo.
	roundedSubtotal := subtotal.Round(2)
	discount := roundedSubtotal.Mul(policy.Rate).Div(oneHundred).Round(2)
	afterDiscount := roundedSubtotal.Sub(discount)

	b := &Breakdown{
		Subtotal:       roundedSubtotal,
		DiscountAmount: discount,
		AfterDiscount:  afterDiscount,
	}

	if policy.VatExempt {
		b.VatExemptAmount = afterDiscount
		b.VatableAmount = decimal.Zero
		b.VatAmount = decimal.Zero
	} else {
		b.VatExemptAmount = decimal.Zero
		b.VatableAmount = afterDiscount
		b.VatAmount = afterDiscount.Mul(taxRate).Div(oneHundred).Round(2)
	}

	b.Total = afterDiscount.Add(b.VatAmount)
	return b, nil
}
