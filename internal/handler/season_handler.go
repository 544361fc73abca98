package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/phenology"
	"github.com/croftview/fieldops-backend-go/internal/service"
	"github.com/croftview/fieldops-backend-go/pkg/response"
)

// SeasonHandler handles HTTP requests for crop seasons
type SeasonHandler struct {
	seasonService *service.SeasonService
}

// NewSeasonHandler creates a new season handler
func NewSeasonHandler(seasonService *service.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService}
}

// SeasonRequest carries caller-supplied season data
type SeasonRequest struct {
	CropID         *string                `json:"cropId"`
	StageIntervals []models.StageInterval `json:"stageIntervals"`
}

// ListByField handles GET /api/v1/fields/:id/seasons
func (h *SeasonHandler) ListByField(c *gin.Context) {
	seasons, err := h.seasonService.ListByField(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  seasons,
		"count": len(seasons),
	})
}

// Create handles POST /api/v1/fields/:id/seasons
func (h *SeasonHandler) Create(c *gin.Context) {
	var req SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid season payload")
		return
	}

	season, err := h.seasonService.Create(c.Param("id"), req.CropID, req.StageIntervals)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if season == nil {
		response.NotFound(c, "Field not found")
		return
	}

	response.Success(c, season)
}

// Get handles GET /api/v1/seasons/:id
func (h *SeasonHandler) Get(c *gin.Context) {
	season, err := h.seasonService.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if season == nil {
		response.NotFound(c, "Season not found")
		return
	}

	response.Success(c, season)
}

// ReplaceStages handles PUT /api/v1/seasons/:id/stages
func (h *SeasonHandler) ReplaceStages(c *gin.Context) {
	var req struct {
		StageIntervals []models.StageInterval `json:"stageIntervals" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid stage intervals payload")
		return
	}

	ok, err := h.seasonService.ReplaceStages(c.Param("id"), req.StageIntervals)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if !ok {
		response.NotFound(c, "Season not found")
		return
	}

	season, err := h.seasonService.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, season)
}

// StageAt handles GET /api/v1/seasons/:id/stage?date=YYYY-MM-DD
func (h *SeasonHandler) StageAt(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse(phenology.DateLayout, date); err != nil {
		response.BadRequest(c, "Invalid or missing date parameter, expected YYYY-MM-DD")
		return
	}

	result, err := h.seasonService.StageAt(c.Param("id"), date)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if result == nil {
		response.NotFound(c, "Season not found")
		return
	}

	response.Success(c, result)
}
