package main

import (
	"log"

	"github.com/croftview/fieldops-backend-go/internal/api"
	"github.com/croftview/fieldops-backend-go/internal/catalog"
	"github.com/croftview/fieldops-backend-go/internal/config"
	"github.com/croftview/fieldops-backend-go/internal/database"
	"github.com/croftview/fieldops-backend-go/internal/repository"
)

func main() {
	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()

	migrator := database.NewMigrationManager(db, cfg.MigrationsPath)
	if err := migrator.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	productRepo := repository.NewProductRepository(db)
	if err := catalog.SeedIfEmpty(cfg.ProductCatalogPath, productRepo); err != nil {
		log.Fatal("Failed to seed product catalog:", err)
	}

	router := api.SetupRouter(db)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
