package models

import "time"

// Task kinds as stored in the tasks table.
const (
	TaskKindSpraying    = "SPRAYING"
	TaskKindSowing      = "SOWING"
	TaskKindFertilizing = "FERTILIZING"
	TaskKindHarvest     = "HARVEST"
)

// RecipeEntry is one product line of a spraying recipe. ProductID may be
// absent for free-text entries that were never linked to the catalog.
type RecipeEntry struct {
	ProductID *string `json:"productId,omitempty" db:"product_id"`
}

// Task represents a field-operation task. PlannedDate and ExecutionDate
// are instants (RFC3339 in storage); either or both may be absent.
type Task struct {
	ID               string        `json:"id" db:"id"`
	FieldID          string        `json:"fieldId" db:"field_id"`
	SeasonID         *string       `json:"seasonId,omitempty" db:"season_id"`
	CropID           *string       `json:"cropId,omitempty" db:"crop_id"`
	Kind             string        `json:"kind" db:"kind"`
	PlannedDate      *time.Time    `json:"plannedDate,omitempty" db:"planned_date"`
	ExecutionDate    *time.Time    `json:"executionDate,omitempty" db:"execution_date"`
	CreationFlowHint *string       `json:"creationFlowHint,omitempty" db:"creation_flow_hint"`
	RecipeEntries    []RecipeEntry `json:"recipeEntries,omitempty"`
	CreatedAt        string        `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt        string        `json:"updatedAt,omitempty" db:"updated_at"`
}

// SpraySequence is the per-task augmentation computed for herbicide
// applications: a 1-based position within the task's (field, season)
// group and whether it follows the previous application too closely.
type SpraySequence struct {
	Order         int  `json:"sprayOrder"`
	IntervalAlert bool `json:"intervalAlert"`
}

// TaskView is a task as served to list/detail consumers, overlaid with
// the derived spray sequence and growth-stage badge where applicable.
type TaskView struct {
	Task
	GrowthStage   string `json:"growthStage,omitempty"`
	SprayOrder    int    `json:"sprayOrder,omitempty"`
	IntervalAlert bool   `json:"intervalAlert,omitempty"`
	Herbicide     bool   `json:"herbicide"`
}

// TasksResponse represents a paginated response of task views
type TasksResponse struct {
	Data       []TaskView `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}
