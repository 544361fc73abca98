package service

import (
	"fmt"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/repository"
	"github.com/croftview/fieldops-backend-go/internal/spatial"
)

// WeatherService dispatches weather sampling per cluster: the external
// collector samples one representative per cluster and every member
// reads the representative's observations back.
type WeatherService struct {
	fieldRepo   *repository.FieldRepository
	weatherRepo *repository.WeatherRepository
}

// NewWeatherService creates a new weather service
func NewWeatherService(fieldRepo *repository.FieldRepository, weatherRepo *repository.WeatherRepository) *WeatherService {
	return &WeatherService{fieldRepo: fieldRepo, weatherRepo: weatherRepo}
}

// Targets returns one sampling target per cluster for the collector
func (s *WeatherService) Targets() ([]models.WeatherTarget, error) {
	fields, err := s.fieldRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}

	clusters := spatial.ClusterFields(fields, spatial.DefaultClusterRadiusKm)
	targets := make([]models.WeatherTarget, 0, len(clusters))
	for _, c := range clusters {
		targets = append(targets, models.WeatherTarget{
			FieldID:   c.Representative.ID,
			FieldName: c.Representative.Name,
			Lat:       c.Representative.Lat,
			Lon:       c.Representative.Lon,
			MemberIDs: c.MemberIDs,
		})
	}
	return targets, nil
}

// Ingest stores a collector-pushed observation; false when the field is
// unknown
func (s *WeatherService) Ingest(obs models.WeatherObservation) (bool, error) {
	field, err := s.fieldRepo.GetByID(obs.FieldID)
	if err != nil {
		return false, fmt.Errorf("failed to check field: %w", err)
	}
	if field == nil {
		return false, nil
	}
	if err := s.weatherRepo.Upsert(obs); err != nil {
		return false, err
	}
	return true, nil
}

// ForField serves a field's weather by resolving its cluster and
// reading the representative's observations (the broadcast read).
// Returns nil when the field is unknown.
func (s *WeatherService) ForField(fieldID, from, to string) (*models.FieldWeather, error) {
	fields, err := s.fieldRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}

	clusters := spatial.ClusterFields(fields, spatial.DefaultClusterRadiusKm)
	var cluster *models.FieldCluster
	for i := range clusters {
		for _, member := range clusters[i].MemberIDs {
			if member == fieldID {
				cluster = &clusters[i]
				break
			}
		}
		if cluster != nil {
			break
		}
	}
	if cluster == nil {
		return nil, nil
	}

	observations, err := s.weatherRepo.ListByFieldRange(cluster.Representative.ID, from, to)
	if err != nil {
		return nil, err
	}

	return &models.FieldWeather{
		FieldID:          fieldID,
		RepresentativeID: cluster.Representative.ID,
		Observations:     observations,
	}, nil
}
