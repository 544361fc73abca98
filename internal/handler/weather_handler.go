package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/phenology"
	"github.com/croftview/fieldops-backend-go/internal/service"
	"github.com/croftview/fieldops-backend-go/pkg/response"
)

// WeatherHandler handles HTTP requests for weather targets, ingest and
// broadcast reads
type WeatherHandler struct {
	weatherService *service.WeatherService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(weatherService *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{weatherService: weatherService}
}

// Targets handles GET /api/v1/weather/targets
func (h *WeatherHandler) Targets(c *gin.Context) {
	targets, err := h.weatherService.Targets()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  targets,
		"count": len(targets),
	})
}

// Ingest handles POST /api/v1/weather/observations
func (h *WeatherHandler) Ingest(c *gin.Context) {
	var obs models.WeatherObservation
	if err := c.ShouldBindJSON(&obs); err != nil {
		response.BadRequest(c, "Invalid observation payload")
		return
	}
	if obs.FieldID == "" {
		response.BadRequest(c, "Missing fieldId")
		return
	}
	if _, err := time.Parse(phenology.DateLayout, obs.ObsDate); err != nil {
		response.BadRequest(c, "Invalid obsDate, expected YYYY-MM-DD")
		return
	}

	ok, err := h.weatherService.Ingest(obs)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if !ok {
		response.NotFound(c, "Field not found")
		return
	}

	response.Success(c, nil)
}

// ForField handles GET /api/v1/fields/:id/weather
func (h *WeatherHandler) ForField(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	weather, err := h.weatherService.ForField(c.Param("id"), from, to)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if weather == nil {
		response.NotFound(c, "Field not found")
		return
	}

	response.Success(c, weather)
}
