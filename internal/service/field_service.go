package service

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/repository"
	"github.com/croftview/fieldops-backend-go/internal/spatial"
)

// FieldService handles business logic for fields
type FieldService struct {
	fieldRepo *repository.FieldRepository
}

// NewFieldService creates a new field service
func NewFieldService(fieldRepo *repository.FieldRepository) *FieldService {
	return &FieldService{fieldRepo: fieldRepo}
}

// List retrieves fields with filtering and pagination
func (s *FieldService) List(filter models.FieldFilter) (*models.FieldsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 500 {
		filter.PageSize = 500
	}

	fields, total, err := s.fieldRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}

	return &models.FieldsResponse{
		Data:       fields,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}, nil
}

// Create stores a new field with a generated id
func (s *FieldService) Create(name string, lat, lon *float64) (*models.Field, error) {
	f := models.Field{
		ID:   uuid.NewString(),
		Name: name,
		Lat:  lat,
		Lon:  lon,
	}
	if err := s.fieldRepo.Create(f); err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}
	return s.fieldRepo.GetByID(f.ID)
}

// Get retrieves a field by id, nil when absent
func (s *FieldService) Get(id string) (*models.Field, error) {
	return s.fieldRepo.GetByID(id)
}

// Update updates a field; false when the field does not exist
func (s *FieldService) Update(f models.Field) (bool, error) {
	return s.fieldRepo.Update(f)
}

// Delete removes a field; false when the field does not exist
func (s *FieldService) Delete(id string) (bool, error) {
	return s.fieldRepo.Delete(id)
}

// Clusters partitions all fields into weather-sharing clusters. Derived
// per request from current data, never persisted.
func (s *FieldService) Clusters() ([]models.FieldCluster, error) {
	fields, err := s.fieldRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load fields for clustering: %w", err)
	}
	return spatial.ClusterFields(fields, spatial.DefaultClusterRadiusKm), nil
}
