package repository

import (
	"database/sql"
	"fmt"

	"github.com/croftview/fieldops-backend-go/internal/database"
	"github.com/croftview/fieldops-backend-go/internal/models"
)

// ProductRepository handles database operations for the product catalog
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List retrieves catalog entries, optionally scoped to one crop
func (r *ProductRepository) List(cropID string) ([]models.Product, error) {
	query := `SELECT id, crop_id, name, category FROM products`
	var args []interface{}
	if cropID != "" {
		query += ` WHERE crop_id = ?`
		args = append(args, cropID)
	}
	query += ` ORDER BY crop_id, id`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CropID, &p.Name, &p.Category); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}

// Count returns the number of catalog entries
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// UpsertBatch inserts or replaces catalog entries in one transaction.
// Catalog syncs may repeat, so (id, crop_id) conflicts overwrite.
func (r *ProductRepository) UpsertBatch(products []models.Product) error {
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO products (id, crop_id, name, category)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id, crop_id) DO UPDATE SET name = excluded.name, category = excluded.category`)
		if err != nil {
			return fmt.Errorf("failed to prepare product upsert: %w", err)
		}
		defer stmt.Close()

		for _, p := range products {
			if _, err := stmt.Exec(p.ID, p.CropID, p.Name, p.Category); err != nil {
				return fmt.Errorf("failed to upsert product %s/%s: %w", p.CropID, p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert products: %w", err)
	}
	return nil
}
