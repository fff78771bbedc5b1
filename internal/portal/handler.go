package portal

import (
	"net/http"

	"github.com/gla-dpsingh/Animal-Care/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/get_hospitals", h.GetHospitals)
	r.GET("/get_medicines", h.GetMedicines)
	r.GET("/get_reports", h.GetReports)
}

func (h *Handler) GetHospitals(c *gin.Context) {
	hospitals, err := h.repo.ListHospitals(c.Request.Context())
	if err != nil {
		logger.Error("failed to list hospitals", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hospitals"})
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

func (h *Handler) GetMedicines(c *gin.Context) {
	medicines, err := h.repo.ListMedicines(c.Request.Context())
	if err != nil {
		logger.Error("failed to list medicines", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load medicines"})
		return
	}
	c.JSON(http.StatusOK, medicines)
}

func (h *Handler) GetReports(c *gin.Context) {
	reports, err := h.repo.ListReports(c.Request.Context())
	if err != nil {
		logger.Error("failed to list reports", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}
