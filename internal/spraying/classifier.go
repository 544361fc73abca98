// Package spraying classifies chemical-application tasks and sequences
// herbicide applications to flag unsafe re-application intervals. All
// functions are pure: no I/O, no clock, no errors.
package spraying

import (
	"strings"

	"github.com/croftview/fieldops-backend-go/internal/models"
)

// FlowHintWeedManagement is the creation-flow marker set on tasks
// created through the weed-management flow. It backs the fallback
// classification used while per-crop product metadata is unavailable.
const FlowHintWeedManagement = "weed_management"

// HerbicideIndex maps a crop id to the set of normalized product ids
// known to be herbicide-category for that crop.
type HerbicideIndex map[string]map[string]struct{}

// NormalizeProductID normalizes a catalog or recipe product id for
// matching: trim and lowercase.
func NormalizeProductID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// BuildHerbicideIndex derives the per-crop herbicide sets from the
// product catalog, keeping only herbicide-category entries.
func BuildHerbicideIndex(products []models.Product) HerbicideIndex {
	index := make(HerbicideIndex)
	for _, p := range products {
		if p.Category != models.CategoryHerbicide {
			continue
		}
		set, ok := index[p.CropID]
		if !ok {
			set = make(map[string]struct{})
			index[p.CropID] = set
		}
		set[NormalizeProductID(p.ID)] = struct{}{}
	}
	return index
}

// IsHerbicideApplication reports whether a task counts as a herbicide
// application. Only spraying tasks qualify at all. When a non-empty
// herbicide set is known for the task's crop, the recipe decides: the
// task matches iff any recipe entry's normalized product id is in the
// set, and the flow-hint heuristic is ignored even when it disagrees.
// Without crop-level product data (not yet loaded, or no herbicides
// registered) the classifier falls back to the creation-flow hint so it
// degrades gracefully instead of under-reporting while the catalog is
// still in flight.
func IsHerbicideApplication(task models.Task, herbicides HerbicideIndex) bool {
	if task.Kind != models.TaskKindSpraying {
		return false
	}

	if task.CropID != nil {
		if set := herbicides[*task.CropID]; len(set) > 0 {
			for _, entry := range task.RecipeEntries {
				if entry.ProductID == nil {
					continue
				}
				if _, ok := set[NormalizeProductID(*entry.ProductID)]; ok {
					return true
				}
			}
			return false
		}
	}

	return task.CreationFlowHint != nil &&
		strings.EqualFold(*task.CreationFlowHint, FlowHintWeedManagement)
}
