package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/croftview/fieldops-backend-go/internal/models"
)

// FieldRepository handles database operations for fields
type FieldRepository struct {
	db *sql.DB
}

// NewFieldRepository creates a new field repository
func NewFieldRepository(db *sql.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

const fieldColumns = "id, name, lat, lon, created_at, updated_at"

func scanField(row interface{ Scan(...interface{}) error }) (models.Field, error) {
	var f models.Field
	var lat, lon sql.NullFloat64
	err := row.Scan(&f.ID, &f.Name, &lat, &lon, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return f, err
	}
	if lat.Valid {
		f.Lat = &lat.Float64
	}
	if lon.Valid {
		f.Lon = &lon.Float64
	}
	return f, nil
}

// Create inserts a new field
func (r *FieldRepository) Create(f models.Field) error {
	query := `INSERT INTO fields (id, name, lat, lon) VALUES (?, ?, ?, ?)`
	_, err := r.db.Exec(query, f.ID, f.Name, nullFloat(f.Lat), nullFloat(f.Lon))
	if err != nil {
		return fmt.Errorf("failed to create field: %w", err)
	}
	return nil
}

// GetByID retrieves a single field by ID, nil when absent
func (r *FieldRepository) GetByID(id string) (*models.Field, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields WHERE id = ?`
	f, err := scanField(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get field: %w", err)
	}
	return &f, nil
}

// List retrieves fields with filtering and pagination
func (r *FieldRepository) List(filter models.FieldFilter) ([]models.Field, int64, error) {
	query := `SELECT ` + fieldColumns + ` FROM fields`
	countQuery := `SELECT COUNT(*) FROM fields`

	var conditions []string
	var args []interface{}

	if filter.Name != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filter.Name+"%")
	}

	if len(conditions) > 0 {
		where := " WHERE " + strings.Join(conditions, " AND ")
		query += where
		countQuery += where
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count fields: %w", err)
	}

	page, pageSize := clampPage(filter.Page, filter.PageSize)
	query += " ORDER BY name, id LIMIT ? OFFSET ?"
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	var fields []models.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan field: %w", err)
		}
		fields = append(fields, f)
	}

	return fields, total, nil
}

// ListAll retrieves every field, in name order; clustering needs the
// whole set
func (r *FieldRepository) ListAll() ([]models.Field, error) {
	rows, err := r.db.Query(`SELECT ` + fieldColumns + ` FROM fields ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	var fields []models.Field
	for rows.Next() {
		f, err := scanField(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field: %w", err)
		}
		fields = append(fields, f)
	}

	return fields, nil
}

// Update updates a field's name and center
func (r *FieldRepository) Update(f models.Field) (bool, error) {
	query := `UPDATE fields SET name = ?, lat = ?, lon = ?, updated_at = datetime('now') WHERE id = ?`
	res, err := r.db.Exec(query, f.Name, nullFloat(f.Lat), nullFloat(f.Lon), f.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update field: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update field: %w", err)
	}
	return n > 0, nil
}

// Delete removes a field and, via cascades, its seasons and tasks
func (r *FieldRepository) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM fields WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete field: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete field: %w", err)
	}
	return n > 0, nil
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 100
	}
	if pageSize > 500 {
		pageSize = 500
	}
	return page, pageSize
}
