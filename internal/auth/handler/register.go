package handler

import (
	"errors"
	"net/http"

	"github.com/gla-dpsingh/Animal-Care/internal/auth/credentials"
	"github.com/gla-dpsingh/Animal-Care/internal/logger"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

func (h *Handler) Register(c *gin.Context) {
	if !requireJSON(c) {
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Invalid request",
		})
		return
	}

	userID, err := h.credentials.Register(
		c.Request.Context(),
		req.Username,
		req.Email,
		req.Password,
		req.Phone,
	)

	if err != nil {
		switch {
		case errors.Is(err, credentials.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false, "message": "Email already exists",
			})
		case errors.Is(err, credentials.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false, "message": "Password too short",
			})
		default:
			logger.Error("registration failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false, "message": "Registration failed",
			})
		}
		return
	}

	logger.Info("user registered", map[string]any{"user_id": userID})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
