package chat

import (
	"net/http"

	"github.com/gla-dpsingh/Animal-Care/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/chat", h.Chat)
}

func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	response, err := h.service.Ask(c.Request.Context(), req.Message)
	if err != nil {
		logger.Error("chat completion failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusBadGateway, gin.H{"error": "chat service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
