package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/service"
	"github.com/croftview/fieldops-backend-go/pkg/response"
)

// FieldHandler handles HTTP requests for fields
type FieldHandler struct {
	fieldService *service.FieldService
}

// NewFieldHandler creates a new field handler
func NewFieldHandler(fieldService *service.FieldService) *FieldHandler {
	return &FieldHandler{fieldService: fieldService}
}

// FieldRequest carries caller-supplied field data. Lat/Lon are optional
// together; a field without a center is valid ("locationless").
type FieldRequest struct {
	Name string   `json:"name" binding:"required"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// List handles GET /api/v1/fields
func (h *FieldHandler) List(c *gin.Context) {
	var filter models.FieldFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.fieldService.List(filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}

// Create handles POST /api/v1/fields
func (h *FieldHandler) Create(c *gin.Context) {
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid field payload")
		return
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		response.BadRequest(c, "lat and lon must be supplied together")
		return
	}

	field, err := h.fieldService.Create(req.Name, req.Lat, req.Lon)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, field)
}

// Get handles GET /api/v1/fields/:id
func (h *FieldHandler) Get(c *gin.Context) {
	field, err := h.fieldService.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if field == nil {
		response.NotFound(c, "Field not found")
		return
	}

	response.Success(c, field)
}

// Update handles PUT /api/v1/fields/:id
func (h *FieldHandler) Update(c *gin.Context) {
	var req FieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid field payload")
		return
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		response.BadRequest(c, "lat and lon must be supplied together")
		return
	}

	ok, err := h.fieldService.Update(models.Field{
		ID:   c.Param("id"),
		Name: req.Name,
		Lat:  req.Lat,
		Lon:  req.Lon,
	})
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if !ok {
		response.NotFound(c, "Field not found")
		return
	}

	field, err := h.fieldService.Get(c.Param("id"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, field)
}

// Delete handles DELETE /api/v1/fields/:id
func (h *FieldHandler) Delete(c *gin.Context) {
	ok, err := h.fieldService.Delete(c.Param("id"))
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

// Clusters handles GET /api/v1/fields/clusters
func (h *FieldHandler) Clusters(c *gin.Context) {
	clusters, err := h.fieldService.Clusters()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  clusters,
		"count": len(clusters),
	})
}
