package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"certportal/certificate-portal-backend/internal/certificates"
)

// Handler handles the admin settings endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates a settings handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the settings routes. The group is expected to
// carry the auth middleware.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/settings", h.getSettings)
	router.PUT("/settings", h.updateSettings)
}

func (h *Handler) getSettings(c *gin.Context) {
	current, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"footer_caption":  current.FooterCaption,
		"website_options": certificates.WebsiteOptions,
		"updated_at":      current.UpdatedAt,
	})
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, current)
}
