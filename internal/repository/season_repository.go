package repository

import (
	"database/sql"
	"fmt"

	"github.com/croftview/fieldops-backend-go/internal/database"
	"github.com/croftview/fieldops-backend-go/internal/models"
)

// SeasonRepository handles database operations for crop seasons and
// their predicted stage intervals
type SeasonRepository struct {
	db *sql.DB
}

// NewSeasonRepository creates a new season repository
func NewSeasonRepository(db *sql.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

// Create inserts a season together with its stage intervals
func (r *SeasonRepository) Create(s models.Season) error {
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO seasons (id, field_id, crop_id) VALUES (?, ?, ?)`,
			s.ID, s.FieldID, nullString(s.CropID))
		if err != nil {
			return fmt.Errorf("failed to insert season: %w", err)
		}
		return insertStageIntervals(tx, s.ID, s.StageIntervals)
	})
	if err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}
	return nil
}

// GetByID retrieves a season with its stage intervals, nil when absent
func (r *SeasonRepository) GetByID(id string) (*models.Season, error) {
	var s models.Season
	var cropID sql.NullString
	err := r.db.QueryRow(`SELECT id, field_id, crop_id, created_at FROM seasons WHERE id = ?`, id).
		Scan(&s.ID, &s.FieldID, &cropID, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	if cropID.Valid {
		s.CropID = &cropID.String
	}

	s.StageIntervals, err = r.loadStageIntervals(s.ID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByField retrieves all seasons of a field with their intervals
func (r *SeasonRepository) ListByField(fieldID string) ([]models.Season, error) {
	rows, err := r.db.Query(
		`SELECT id, field_id, crop_id, created_at FROM seasons WHERE field_id = ? ORDER BY created_at, id`,
		fieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []models.Season
	for rows.Next() {
		var s models.Season
		var cropID sql.NullString
		if err := rows.Scan(&s.ID, &s.FieldID, &cropID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		if cropID.Valid {
			s.CropID = &cropID.String
		}
		seasons = append(seasons, s)
	}
	rows.Close()

	for i := range seasons {
		seasons[i].StageIntervals, err = r.loadStageIntervals(seasons[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return seasons, nil
}

// ReplaceStageIntervals replaces a season's predicted intervals with a
// new prediction, preserving the supplied order
func (r *SeasonRepository) ReplaceStageIntervals(seasonID string, intervals []models.StageInterval) error {
	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM stage_intervals WHERE season_id = ?`, seasonID); err != nil {
			return fmt.Errorf("failed to clear stage intervals: %w", err)
		}
		return insertStageIntervals(tx, seasonID, intervals)
	})
	if err != nil {
		return fmt.Errorf("failed to replace stage intervals: %w", err)
	}
	return nil
}

func insertStageIntervals(tx *sql.Tx, seasonID string, intervals []models.StageInterval) error {
	stmt, err := tx.Prepare(`INSERT INTO stage_intervals
		(season_id, position, stage_index, start_date, end_date, stage_name)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare interval insert: %w", err)
	}
	defer stmt.Close()

	for i, iv := range intervals {
		_, err := stmt.Exec(seasonID, i, iv.Index, iv.StartDate, nullString(iv.EndDate), nullString(iv.StageName))
		if err != nil {
			return fmt.Errorf("failed to insert stage interval %d: %w", i, err)
		}
	}
	return nil
}

func (r *SeasonRepository) loadStageIntervals(seasonID string) ([]models.StageInterval, error) {
	rows, err := r.db.Query(
		`SELECT stage_index, start_date, end_date, stage_name
		 FROM stage_intervals WHERE season_id = ? ORDER BY position`,
		seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stage intervals: %w", err)
	}
	defer rows.Close()

	var intervals []models.StageInterval
	for rows.Next() {
		var iv models.StageInterval
		var endDate, stageName sql.NullString
		if err := rows.Scan(&iv.Index, &iv.StartDate, &endDate, &stageName); err != nil {
			return nil, fmt.Errorf("failed to scan stage interval: %w", err)
		}
		if endDate.Valid {
			iv.EndDate = &endDate.String
		}
		if stageName.Valid {
			iv.StageName = &stageName.String
		}
		intervals = append(intervals, iv)
	}

	return intervals, nil
}
