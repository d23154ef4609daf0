package enum

// MovementKind classifies a stock movement
type MovementKind string

const (
	MovementKindSale       MovementKind = "sale"
	MovementKindPurchase   MovementKind = "purchase"
	MovementKindAdjustment MovementKind = "adjustment"
	MovementKindWaste      MovementKind = "waste"
	MovementKindTransfer   MovementKind = "transfer"
)

// Valid reports whether the kind is one of the recognized movement kinds.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementKindSale, MovementKindPurchase, MovementKindAdjustment,
		MovementKindWaste, MovementKindTransfer:
		return true
	}
	return false
}
