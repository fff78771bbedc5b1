package handler

import (
	"errors"
	"net/http"

	"github.com/gla-dpsingh/Animal-Care/internal/auth/otp"
	"github.com/gla-dpsingh/Animal-Care/internal/logger"
	"github.com/gla-dpsingh/Animal-Care/internal/session"

	"github.com/gin-gonic/gin"
)

type requestOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

type verifyOTPRequest struct {
	OTP string `json:"otp" binding:"required"`
}

// RequestOTP starts a step-up challenge for the caller's session. The
// code travels only through the notifier; the response carries a bare
// success flag.
func (h *Handler) RequestOTP(c *gin.Context) {
	if !requireJSON(c) {
		return
	}

	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Invalid request",
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

	err = h.challenges.Issue(c.Request.Context(), sess.SessionID, req.Email)
	if err != nil {
		if errors.Is(err, otp.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false, "message": "User not found",
			})
			return
		}
		logger.Error("otp issue failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false, "message": "Failed to send OTP",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	if !requireJSON(c) {
		return
	}

	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Invalid request",
		})
		return
	}

	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Invalid OTP",
		})
		return
	}

	err = h.challenges.Verify(c.Request.Context(), cookie.Value, req.OTP)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, otp.ErrChallengeExpired):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "OTP expired",
		})
	case errors.Is(err, otp.ErrTooManyAttempts):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Too many attempts",
		})
	case errors.Is(err, otp.ErrInvalidCode), errors.Is(err, otp.ErrNoChallenge):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Invalid OTP",
		})
	default:
		logger.Error("otp verify failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false, "message": "Verification failed",
		})
	}
}

func (h *Handler) ResendOTP(c *gin.Context) {
	if !requireJSON(c) {
		return
	}

	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Session expired",
		})
		return
	}

	err = h.challenges.Reissue(c.Request.Context(), cookie.Value)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, otp.ErrSessionExpired):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false, "message": "Session expired",
		})
	case errors.Is(err, otp.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false, "message": "User not found",
		})
	default:
		logger.Error("otp reissue failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false, "message": "Failed to send OTP",
		})
	}
}
