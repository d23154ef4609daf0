package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// GenerateReceiptNo generates a receipt number that is collision-free under
// concurrent terminals (random UUID fragment rather than a shared counter).
func GenerateReceiptNo() string {
	return "OR-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateRefundNo generates a reference for a compensating transaction.
func GenerateRefundNo() string {
	return "RF-" + strings.ToUpper(uuid.New().String()[:8])
}
