package service

import (
	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/jraflores/tindahan-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// DiscountPolicy is the resolved effect of a discount code on a sale.
type DiscountPolicy struct {
	Type      enum.DiscountType `json:"type"`
	Rate      decimal.Decimal   `json:"rate"` // percent, 0..100
	VatExempt bool              `json:"vat_exempt"`
	Label     string            `json:"label"`
}

var discountPolicies = map[string]DiscountPolicy{
	"none": {
		Type:      enum.DiscountTypeNone,
		Rate:      decimal.Zero,
		VatExempt: false,
		Label:     "No Discount",
	},
	"senior": {
		Type:      enum.DiscountTypeSenior,
		Rate:      decimal.NewFromInt(20),
		VatExempt: true,
		Label:     "Senior Citizen (20%, VAT-exempt)",
	},
	"pwd": {
		Type:      enum.DiscountTypePWD,
		Rate:      decimal.NewFromInt(20),
		VatExempt: true,
		Label:     "PWD (20%, VAT-exempt)",
	},
}

// ResolveDiscount maps a discount code to its policy. Pure lookup, no I/O.
func ResolveDiscount(code string) (*DiscountPolicy, error) {
	policy, ok := discountPolicies[code]
	if !ok {
		return nil, apperror.NewInvalidDiscountCode(code)
	}
	return &policy, nil
}

// DiscountCodes lists the recognized discount codes.
func DiscountCodes() []string {
	return []string{"none", "senior", "pwd"}
}

// IsDiscountCode reports whether the code is recognized.
func IsDiscountCode(code string) bool {
	_, ok := discountPolicies[code]
	return ok
}
