package handler

import (
	"net/http"

	"github.com/gla-dpsingh/Animal-Care/internal/logger"
	"github.com/gla-dpsingh/Animal-Care/internal/middleware"

	"github.com/gin-gonic/gin"
)

type videoCallTokenRequest struct {
	ChannelName string `json:"channelName" binding:"required"`
	// UID is accepted for wire compatibility but ignored: the token
	// subject is always the session's user.
	UID int64 `json:"uid"`
}

// VideoCallToken mints a one-hour channel token for the authenticated
// user. Runs behind RequireAuth.
func (h *Handler) VideoCallToken(c *gin.Context) {
	if !requireJSON(c) {
		return
	}

	var req videoCallTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Invalid request",
		})
		return
	}

	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false, "message": "Unauthorized",
		})
		return
	}

	token, err := h.tokens.IssueToken(req.ChannelName, sess.UserID)
	if err != nil {
		logger.Error("token issue failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false, "message": "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}
