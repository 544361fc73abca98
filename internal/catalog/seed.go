// Package catalog loads the optional product-catalog seed file. The
// catalog may also arrive later through the sync endpoint; a missing
// seed is normal, the classifier's fallback path covers the gap.
package catalog

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/repository"
)

type seedFile struct {
	Products []models.Product `yaml:"products"`
}

// LoadFile parses a YAML product-catalog seed file
func LoadFile(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return f.Products, nil
}

// SeedIfEmpty loads the seed file into the products table, but only
// when the table is still empty so a synced catalog is never clobbered
// at startup. An empty path or missing file is not an error.
func SeedIfEmpty(path string, products *repository.ProductRepository) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[Catalog] seed file %s not found, skipping", path)
		return nil
	}

	count, err := products.Count()
	if err != nil {
		return fmt.Errorf("failed to check product count: %w", err)
	}
	if count > 0 {
		return nil
	}

	entries, err := LoadFile(path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	if err := products.UpsertBatch(entries); err != nil {
		return fmt.Errorf("failed to seed product catalog: %w", err)
	}

	log.Printf("[Catalog] seeded %d products from %s", len(entries), path)
	return nil
}
