package handler

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/jraflores/tindahan-api/internal/presentation/http/dto/response"
	"github.com/jraflores/tindahan-api/pkg/utils"
)

// TerminalHandler issues terminal tokens. Registers on the store LAN exchange
// the shared provisioning secret for a short-lived bearer token that stamps
// their identity onto every settlement.
type TerminalHandler struct {
	tokens *utils.TerminalTokenManager
	secret string
}

// NewTerminalHandler creates a new terminal handler
func NewTerminalHandler(tokens *utils.TerminalTokenManager, secret string) *TerminalHandler {
	return &TerminalHandler{tokens: tokens, secret: secret}
}

type registerTerminalRequest struct {
	TerminalID string `json:"terminal_id" binding:"required"`
	Cashier    string `json:"cashier" binding:"required"`
	Secret     string `json:"secret" binding:"required"`
}

// Register handles POST /terminal/register
func (h *TerminalHandler) Register(c *gin.Context) {
	if !h.tokens.Enabled() {
		response.BadRequest(c, "Terminal tokens are not enabled on this install")
		return
	}

	var req registerTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.secret)) != 1 {
		response.Unauthorized(c, "Invalid provisioning secret")
		return
	}

	token, err := h.tokens.GenerateToken(req.TerminalID, req.Cashier)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Terminal registered successfully", gin.H{
		"token":       token,
		"terminal_id": req.TerminalID,
		"cashier":     req.Cashier,
	})
}
