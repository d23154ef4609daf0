package enum

// PaymentMethod tags how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodGCash PaymentMethod = "gcash"
	PaymentMethodCard  PaymentMethod = "card"
)

// Valid reports whether the payment method is recognized.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodGCash, PaymentMethodCard:
		return true
	}
	return false
}
