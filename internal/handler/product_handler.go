package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/repository"
	"github.com/croftview/fieldops-backend-go/pkg/response"
)

// ProductHandler handles HTTP requests for the product catalog. The
// catalog is plain master data, so the handler talks to the repository
// directly.
type ProductHandler struct {
	productRepo *repository.ProductRepository
}

// NewProductHandler creates a new product handler
func NewProductHandler(productRepo *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{productRepo: productRepo}
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productRepo.List(c.Query("cropId"))
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  products,
		"count": len(products),
	})
}

// Sync handles POST /api/v1/products: a bulk catalog upsert pushed by
// the metadata sync job
func (h *ProductHandler) Sync(c *gin.Context) {
	var req struct {
		Products []models.Product `json:"products" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid catalog payload")
		return
	}
	for _, p := range req.Products {
		if p.ID == "" || p.CropID == "" || p.Category == "" {
			response.BadRequest(c, "Products require id, cropId and category")
			return
		}
	}

	if err := h.productRepo.UpsertBatch(req.Products); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{"synced": len(req.Products)})
}
