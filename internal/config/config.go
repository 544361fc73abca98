package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port               string
	DBPath             string
	MigrationsPath     string
	ProductCatalogPath string
}

// Load reads configuration from environment variables with hardcoded
// defaults, after a best-effort .env load
func Load() *Config {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	return &Config{
		Port:               getenv("PORT", ":8080"),
		DBPath:             getenv("DB_PATH", "./data/fieldops.db"),
		MigrationsPath:     getenv("MIGRATIONS_PATH", "./migrations"),
		ProductCatalogPath: getenv("PRODUCT_CATALOG_PATH", "./configs/products.yaml"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
