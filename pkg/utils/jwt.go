package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TerminalClaims identifies the register terminal and cashier behind a request.
// This is transport identity for audit trails, not user session handling.
type TerminalClaims struct {
	TerminalID string `json:"terminal_id"`
	Cashier    string `json:"cashier"`
	jwt.RegisteredClaims
}

// TerminalTokenManager issues and validates terminal identity tokens.
type TerminalTokenManager struct {
	secretKey []byte
	expiry    time.Duration
}

// NewTerminalTokenManager creates a new terminal token manager
func NewTerminalTokenManager(secret string, expiry time.Duration) *TerminalTokenManager {
	return &TerminalTokenManager{
		secretKey: []byte(secret),
		expiry:    expiry,
	}
}

// Enabled reports whether a signing secret is configured.
func (m *TerminalTokenManager) Enabled() bool {
	return len(m.secretKey) > 0
}

// GenerateToken issues a token for a terminal/cashier pair.
func (m *TerminalTokenManager) GenerateToken(terminalID, cashier string) (string, error) {
	claims := &TerminalClaims{
		TerminalID: terminalID,
		Cashier:    cashier,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "tindahan-api",
			Subject:   terminalID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// ValidateToken validates a terminal token and returns the claims
func (m *TerminalTokenManager) ValidateToken(tokenString string) (*TerminalClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TerminalClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TerminalClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
