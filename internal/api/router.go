package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/croftview/fieldops-backend-go/internal/handler"
	"github.com/croftview/fieldops-backend-go/internal/middleware"
	"github.com/croftview/fieldops-backend-go/internal/repository"
	"github.com/croftview/fieldops-backend-go/internal/service"
)

// SetupRouter wires repositories, services and handlers onto a gin
// engine
func SetupRouter(db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(120, time.Minute))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Repositories
	fieldRepo := repository.NewFieldRepository(db)
	seasonRepo := repository.NewSeasonRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	productRepo := repository.NewProductRepository(db)
	weatherRepo := repository.NewWeatherRepository(db)

	// Services
	fieldService := service.NewFieldService(fieldRepo)
	seasonService := service.NewSeasonService(seasonRepo, fieldRepo)
	taskService := service.NewTaskService(taskRepo, fieldRepo, seasonRepo, productRepo)
	weatherService := service.NewWeatherService(fieldRepo, weatherRepo)
	analyticsService := service.NewAnalyticsService(taskRepo, fieldRepo, productRepo)

	// Handlers
	fieldHandler := handler.NewFieldHandler(fieldService)
	seasonHandler := handler.NewSeasonHandler(seasonService)
	taskHandler := handler.NewTaskHandler(taskService)
	productHandler := handler.NewProductHandler(productRepo)
	weatherHandler := handler.NewWeatherHandler(weatherService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Croftview FieldOps API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		fields := api.Group("/fields")
		{
			fields.GET("", fieldHandler.List)
			fields.POST("", fieldHandler.Create)
			fields.GET("/clusters", fieldHandler.Clusters)
			fields.GET("/:id", fieldHandler.Get)
			fields.PUT("/:id", fieldHandler.Update)
			fields.DELETE("/:id", fieldHandler.Delete)
			fields.GET("/:id/weather", weatherHandler.ForField)
			fields.GET("/:id/seasons", seasonHandler.ListByField)
			fields.POST("/:id/seasons", seasonHandler.Create)
		}

		seasons := api.Group("/seasons")
		{
			seasons.GET("/:id", seasonHandler.Get)
			seasons.PUT("/:id/stages", seasonHandler.ReplaceStages)
			seasons.GET("/:id/stage", seasonHandler.StageAt)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/stage-indices", taskHandler.StageIndices)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PATCH("/:id/planned-date", taskHandler.UpdatePlannedDate)
			tasks.DELETE("/:id", taskHandler.Delete)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", productHandler.Sync)
		}

		weather := api.Group("/weather")
		{
			weather.GET("/targets", weatherHandler.Targets)
			weather.POST("/observations", weatherHandler.Ingest)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/spray-gaps", analyticsHandler.SprayGaps)
		}
	}

	return r
}
