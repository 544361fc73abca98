package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/phenology"
	"github.com/croftview/fieldops-backend-go/internal/repository"
)

// SeasonService handles business logic for crop seasons
type SeasonService struct {
	seasonRepo *repository.SeasonRepository
	fieldRepo  *repository.FieldRepository
}

// NewSeasonService creates a new season service
func NewSeasonService(seasonRepo *repository.SeasonRepository, fieldRepo *repository.FieldRepository) *SeasonService {
	return &SeasonService{seasonRepo: seasonRepo, fieldRepo: fieldRepo}
}

// Create stores a new season for a field, nil when the field is unknown
func (s *SeasonService) Create(fieldID string, cropID *string, intervals []models.StageInterval) (*models.Season, error) {
	field, err := s.fieldRepo.GetByID(fieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to check field: %w", err)
	}
	if field == nil {
		return nil, nil
	}

	season := models.Season{
		ID:             uuid.NewString(),
		FieldID:        fieldID,
		CropID:         cropID,
		StageIntervals: intervals,
	}
	if err := s.seasonRepo.Create(season); err != nil {
		return nil, fmt.Errorf("failed to create season: %w", err)
	}
	return s.seasonRepo.GetByID(season.ID)
}

// Get retrieves a season by id, nil when absent
func (s *SeasonService) Get(id string) (*models.Season, error) {
	return s.seasonRepo.GetByID(id)
}

// ListByField retrieves all seasons of a field
func (s *SeasonService) ListByField(fieldID string) ([]models.Season, error) {
	return s.seasonRepo.ListByField(fieldID)
}

// ReplaceStages replaces a season's predicted stage intervals; false
// when the season does not exist
func (s *SeasonService) ReplaceStages(seasonID string, intervals []models.StageInterval) (bool, error) {
	season, err := s.seasonRepo.GetByID(seasonID)
	if err != nil {
		return false, fmt.Errorf("failed to check season: %w", err)
	}
	if season == nil {
		return false, nil
	}
	if err := s.seasonRepo.ReplaceStageIntervals(seasonID, intervals); err != nil {
		return false, err
	}
	return true, nil
}

// StageResult is the resolved growth stage of a season at a date.
// StageIndex is "" when no predicted interval covers the date; that is
// a displayable unknown state, not an error.
type StageResult struct {
	SeasonID   string `json:"seasonId"`
	Date       string `json:"date"`
	StageIndex string `json:"stageIndex"`
}

// StageAt resolves a season's growth stage for a civil date. Returns
// nil when the season is unknown.
func (s *SeasonService) StageAt(seasonID string, date string) (*StageResult, error) {
	target, err := time.Parse(phenology.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	season, err := s.seasonRepo.GetByID(seasonID)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return nil, nil
	}

	intervals := make([]models.StageInterval, len(season.StageIntervals))
	copy(intervals, season.StageIntervals)
	phenology.SortIntervalsByStart(intervals)

	return &StageResult{
		SeasonID:   seasonID,
		Date:       date,
		StageIndex: phenology.FindStageIndex(intervals, target),
	}, nil
}
