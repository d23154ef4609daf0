package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jraflores/tindahan-api/internal/presentation/http/dto/response"
	"github.com/jraflores/tindahan-api/pkg/utils"
)

const (
	terminalIDKey = "terminal_id"
	cashierKey    = "cashier"
)

// TerminalAuth validates the register terminal's bearer token and stashes its
// identity on the context so handlers can stamp the audit actor. When no token
// secret is configured the middleware is a no-op and movements are attributed
// to the unauthenticated defaults.
func TerminalAuth(tokens *utils.TerminalTokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !tokens.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Terminal token required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired terminal token")
			c.Abort()
			return
		}

		c.Set(terminalIDKey, claims.TerminalID)
		c.Set(cashierKey, claims.Cashier)
		c.Next()
	}
}

// GetTerminalID returns the authenticated terminal ID, or "unregistered" when
// terminal auth is disabled.
func GetTerminalID(c *gin.Context) string {
	if id, ok := c.Get(terminalIDKey); ok {
		if s, ok := id.(string); ok && s != "" {
			return s
		}
	}
	return "unregistered"
}

// GetCashier returns the cashier name carried by the terminal token, falling
// back to the X-Cashier header for installs that run without tokens.
func GetCashier(c *gin.Context) string {
	if name, ok := c.Get(cashierKey); ok {
		if s, ok := name.(string); ok && s != "" {
			return s
		}
	}
	if header := c.GetHeader("X-Cashier"); header != "" {
		return header
	}
	return "unknown"
}
