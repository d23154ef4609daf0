package service

import (
	"testing"

	"github.com/jraflores/tindahan-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func TestResolveDiscount(t *testing.T) {
	tests := []struct {
		code      string
		wantType  enum.DiscountType
		wantRate  string
		vatExempt bool
	}{
		{"none", enum.DiscountTypeNone, "0", false},
		{"senior", enum.DiscountTypeSenior, "20", true},
		{"pwd", enum.DiscountTypePWD, "20", true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			policy, err := ResolveDiscount(tt.code)
			if err != nil {
				t.Fatalf("ResolveDiscount(%q) returned error: %v", tt.code, err)
			}
			if policy.Type != tt.wantType {
				t.Errorf("type = %v, want %v", policy.Type, tt.wantType)
			}
			if !policy.Rate.Equal(decimal.RequireFromString(tt.wantRate)) {
				t.Errorf("rate = %s, want %s", policy.Rate, tt.wantRate)
			}
			if policy.VatExempt != tt.vatExempt {
				t.Errorf("vatExempt = %v, want %v", policy.VatExempt, tt.vatExempt)
			}
		})
	}
}

func TestResolveDiscountUnknownCode(t *testing.T) {
	for _, code := range []string{"", "student", "SENIOR", "sc"} {
		if _, err := ResolveDiscount(code); err == nil {
			t.Errorf("ResolveDiscount(%q) should fail", code)
		}
	}
}

func TestIsDiscountCode(t *testing.T) {
	for _, code := range DiscountCodes() {
		if !IsDiscountCode(code) {
			t.Errorf("IsDiscountCode(%q) = false for a listed code", code)
		}
	}
	if IsDiscountCode("student") {
		t.Error("IsDiscountCode should reject unknown codes")
	}
}
