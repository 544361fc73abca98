package repository

import (
	"database/sql"
	"fmt"

	"github.com/croftview/fieldops-backend-go/internal/models"
)

// WeatherRepository handles database operations for collector-pushed
// weather observations
type WeatherRepository struct {
	db *sql.DB
}

// NewWeatherRepository creates a new weather repository
func NewWeatherRepository(db *sql.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

// Upsert stores an observation keyed by (field_id, obs_date). Existing
// measurements are kept when the incoming value is nil, so a later push
// can fill gaps without erasing what an earlier one delivered.
func (r *WeatherRepository) Upsert(obs models.WeatherObservation) error {
	query := `INSERT INTO weather_observations
		(field_id, obs_date, temp_min_c, temp_max_c, precipitation_mm, wind_kph)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(field_id, obs_date) DO UPDATE SET
			temp_min_c = COALESCE(excluded.temp_min_c, weather_observations.temp_min_c),
			temp_max_c = COALESCE(excluded.temp_max_c, weather_observations.temp_max_c),
			precipitation_mm = COALESCE(excluded.precipitation_mm, weather_observations.precipitation_mm),
			wind_kph = COALESCE(excluded.wind_kph, weather_observations.wind_kph),
			updated_at = datetime('now')`

	_, err := r.db.Exec(query, obs.FieldID, obs.ObsDate,
		nullFloat(obs.TempMinC), nullFloat(obs.TempMaxC),
		nullFloat(obs.PrecipitationMm), nullFloat(obs.WindKph))
	if err != nil {
		return fmt.Errorf("failed to upsert weather observation: %w", err)
	}
	return nil
}

// ListByFieldRange retrieves a field's observations within [from, to]
// civil dates; empty bounds are open
func (r *WeatherRepository) ListByFieldRange(fieldID, from, to string) ([]models.WeatherObservation, error) {
	query := `SELECT field_id, obs_date, temp_min_c, temp_max_c, precipitation_mm, wind_kph, updated_at
		FROM weather_observations WHERE field_id = ?`
	args := []interface{}{fieldID}

	if from != "" {
		query += ` AND obs_date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND obs_date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY obs_date`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather observations: %w", err)
	}
	defer rows.Close()

	var observations []models.WeatherObservation
	for rows.Next() {
		var o models.WeatherObservation
		var tmin, tmax, precip, wind sql.NullFloat64
		if err := rows.Scan(&o.FieldID, &o.ObsDate, &tmin, &tmax, &precip, &wind, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weather observation: %w", err)
		}
		if tmin.Valid {
			o.TempMinC = &tmin.Float64
		}
		if tmax.Valid {
			o.TempMaxC = &tmax.Float64
		}
		if precip.Valid {
			o.PrecipitationMm = &precip.Float64
		}
		if wind.Valid {
			o.WindKph = &wind.Float64
		}
		observations = append(observations, o)
	}

	return observations, nil
}
