package spraying

import (
	"sort"
	"time"

	"github.com/croftview/fieldops-backend-go/internal/models"
	"github.com/croftview/fieldops-backend-go/internal/phenology"
)

// MinReapplicationIntervalDays is the minimum safe gap between two
// consecutive herbicide applications on the same field and season, in
// whole civil days. A fixed domain constant, not configuration.
const MinReapplicationIntervalDays = 20

// SeasonFallbackKey groups tasks that have no resolvable season; they
// still get sequenced per field rather than being dropped.
const SeasonFallbackKey = "none"

// EffectiveDate returns the task's execution date if present, else its
// planned date, else nil.
func EffectiveDate(task models.Task) *time.Time {
	if task.ExecutionDate != nil {
		return task.ExecutionDate
	}
	return task.PlannedDate
}

// SequenceTasks orders herbicide applications per (field, season) group
// and flags pairs of consecutive applications spaced less than
// MinReapplicationIntervalDays apart. Input tasks are expected to be
// pre-filtered through IsHerbicideApplication.
//
// Within a group, tasks sort by effective date; tasks with no effective
// date sort after all dated tasks but still receive an order slot. Dated
// ties break by task id so the assignment is identical under input
// reordering; undated tasks keep their input order (stable sort). Order
// is 1-based and contiguous. An alert is raised on a task only when both
// it and its immediate predecessor have effective dates and the whole
// civil-day difference is strictly below the threshold; a missing date
// on either side suppresses the alert for that adjacency.
//
// The result is an augmentation map by task id; input order is left
// untouched for the caller to overlay.
func SequenceTasks(tasks []models.Task) map[string]models.SpraySequence {
	type groupKey struct {
		fieldID  string
		seasonID string
	}

	groups := make(map[groupKey][]models.Task)
	var keys []groupKey
	for _, t := range tasks {
		key := groupKey{fieldID: t.FieldID, seasonID: SeasonFallbackKey}
		if t.SeasonID != nil && *t.SeasonID != "" {
			key.seasonID = *t.SeasonID
		}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], t)
	}

	result := make(map[string]models.SpraySequence, len(tasks))
	for _, key := range keys {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			di := EffectiveDate(group[i])
			dj := EffectiveDate(group[j])
			if di == nil || dj == nil {
				// Undated sorts after all dated; undated pairs keep input order.
				return di != nil && dj == nil
			}
			ci := phenology.CivilDay(*di)
			cj := phenology.CivilDay(*dj)
			if ci.Equal(cj) {
				return group[i].ID < group[j].ID
			}
			return ci.Before(cj)
		})

		for i, t := range group {
			seq := models.SpraySequence{Order: i + 1}
			if i > 0 {
				prev := EffectiveDate(group[i-1])
				cur := EffectiveDate(t)
				if prev != nil && cur != nil {
					gap := wholeDaysBetween(*prev, *cur)
					if gap < MinReapplicationIntervalDays {
						seq.IntervalAlert = true
					}
				}
			}
			result[t.ID] = seq
		}
	}

	return result
}

// wholeDaysBetween returns the difference between two instants in whole
// civil days, UTC-normalized.
func wholeDaysBetween(a, b time.Time) int {
	da := phenology.CivilDay(a)
	db := phenology.CivilDay(b)
	return int(db.Sub(da).Hours() / 24)
}
