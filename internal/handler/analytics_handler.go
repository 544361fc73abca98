package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/service"
	"github.com/croftview/fieldops-backend-go/pkg/response"
)

// AnalyticsHandler handles HTTP requests for derived analytics
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// SprayGaps handles GET /api/v1/analytics/spray-gaps
func (h *AnalyticsHandler) SprayGaps(c *gin.Context) {
	var filter models.SprayGapFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	summaries, err := h.analyticsService.SprayGapSummary(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  summaries,
		"count": len(summaries),
	})
}
