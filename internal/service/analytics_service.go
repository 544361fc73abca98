package service

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/phenology"
	"github.com/croftview/fieldops-backend-go/internal/repository"
	"github.com/croftview/fieldops-backend-go/internal/spraying"
)

// AnalyticsService summarizes herbicide re-application behavior per
// (field, season) group.
type AnalyticsService struct {
	taskRepo    *repository.TaskRepository
	fieldRepo   *repository.FieldRepository
	productRepo *repository.ProductRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(taskRepo *repository.TaskRepository, fieldRepo *repository.FieldRepository,
	productRepo *repository.ProductRepository) *AnalyticsService {
	return &AnalyticsService{taskRepo: taskRepo, fieldRepo: fieldRepo, productRepo: productRepo}
}

// SprayGapSummary computes per-group gap statistics over the herbicide
// applications matching the filter. Gaps are whole civil days between
// consecutive dated applications in sequence order; undated tasks
// occupy an order slot but contribute no gap.
func (s *AnalyticsService) SprayGapSummary(filter models.SprayGapFilter) ([]models.SprayGapSummary, error) {
	fieldIDs, err := s.resolveFieldIDs(filter.FieldID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListSprayingByFields(fieldIDs)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.List("")
	if err != nil {
		return nil, fmt.Errorf("failed to load product catalog: %w", err)
	}
	herbicides := spraying.BuildHerbicideIndex(products)

	var herbTasks []models.Task
	for _, t := range tasks {
		if !spraying.IsHerbicideApplication(t, herbicides) {
			continue
		}
		if filter.SeasonID != "" && seasonKey(t) != filter.SeasonID {
			continue
		}
		herbTasks = append(herbTasks, t)
	}

	sequence := spraying.SequenceTasks(herbTasks)

	type groupKey struct{ fieldID, seasonID string }
	groups := make(map[groupKey][]models.Task)
	for _, t := range herbTasks {
		key := groupKey{t.FieldID, seasonKey(t)}
		groups[key] = append(groups[key], t)
	}

	var summaries []models.SprayGapSummary
	for key, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return sequence[group[i].ID].Order < sequence[group[j].ID].Order
		})

		summary := models.SprayGapSummary{
			FieldID:      key.fieldID,
			SeasonID:     key.seasonID,
			Applications: len(group),
		}

		var gaps []float64
		for i, t := range group {
			if sequence[t.ID].IntervalAlert {
				summary.Alerts++
			}
			if i == 0 {
				continue
			}
			prev := spraying.EffectiveDate(group[i-1])
			cur := spraying.EffectiveDate(t)
			if prev == nil || cur == nil {
				continue
			}
			days := phenology.CivilDay(*cur).Sub(phenology.CivilDay(*prev)).Hours() / 24
			gaps = append(gaps, days)
		}
		summary.Gaps = summarizeGaps(gaps)
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].FieldID != summaries[j].FieldID {
			return summaries[i].FieldID < summaries[j].FieldID
		}
		return summaries[i].SeasonID < summaries[j].SeasonID
	})

	return summaries, nil
}

func (s *AnalyticsService) resolveFieldIDs(fieldID string) ([]string, error) {
	if fieldID != "" {
		return []string{fieldID}, nil
	}
	fields, err := s.fieldRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load fields: %w", err)
	}
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, f.ID)
	}
	return ids, nil
}

func seasonKey(t models.Task) string {
	if t.SeasonID != nil && *t.SeasonID != "" {
		return *t.SeasonID
	}
	return spraying.SeasonFallbackKey
}

func summarizeGaps(gaps []float64) models.GapStats {
	gs := models.GapStats{Count: len(gaps)}
	if len(gaps) == 0 {
		return gs
	}

	// stats errors only on empty input, which is handled above.
	gs.MinDays, _ = stats.Min(gaps)
	gs.MaxDays, _ = stats.Max(gaps)
	gs.MeanDays, _ = stats.Mean(gaps)
	gs.MedianDays, _ = stats.Median(gaps)
	gs.P90Days, _ = stats.Percentile(gaps, 90)
	return gs
}
