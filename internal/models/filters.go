package models

// FieldFilter represents filter parameters for querying fields
type FieldFilter struct {
	Name     string `form:"name"` // substring match
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// TaskFilter represents filter parameters for querying tasks.
// From/To bound the task's effective date (execution date if present,
// else planned date) as YYYY-MM-DD civil dates.
type TaskFilter struct {
	FieldID  string `form:"fieldId"`
	SeasonID string `form:"seasonId"`
	CropID   string `form:"cropId"`
	Kind     string `form:"kind"` // SPRAYING, SOWING, FERTILIZING, HARVEST
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// SprayGapFilter represents filter parameters for the spray-gap summary
type SprayGapFilter struct {
	FieldID  string `form:"fieldId"`
	SeasonID string `form:"seasonId"`
}
