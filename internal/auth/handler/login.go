package handler

import (
	"net/http"

	"github.com/gla-dpsingh/Animal-Care/internal/logger"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	if !requireJSON(c) {
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Invalid request",
		})
		return
	}

	userID, err := h.credentials.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false, "message": "Invalid credentials",
		})
		return
	}

	sess, err := h.ensureSession(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false, "message": "Session error",
		})
		return
	}

	sess.UserID = userID
	if err := h.sessions.Update(c.Request.Context(), *sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false, "message": "Session error",
		})
		return
	}

	logger.Info("login succeeded", map[string]any{
		"user_id": userID,
		"ip":      c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
