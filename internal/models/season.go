package models

// StageInterval is one predicted growth-stage interval of a crop season.
// Dates are civil calendar dates in YYYY-MM-DD form. EndDate, when present,
// is exclusive: the interval covers [StartDate, EndDate-1 day]. An absent
// EndDate means the interval is open-ended. Intervals are not guaranteed
// sorted or non-overlapping as supplied by the backend.
type StageInterval struct {
	Index     string  `json:"index" db:"stage_index"`
	StartDate string  `json:"startDate" db:"start_date"`
	EndDate   *string `json:"endDate,omitempty" db:"end_date"`
	StageName *string `json:"stageName,omitempty" db:"stage_name"`
}

// Season represents one crop season on a field, with its predicted
// growth-stage intervals in the order the prediction supplied them.
type Season struct {
	ID             string          `json:"id" db:"id"`
	FieldID        string          `json:"fieldId" db:"field_id"`
	CropID         *string         `json:"cropId,omitempty" db:"crop_id"`
	StageIntervals []StageInterval `json:"stageIntervals"`
	CreatedAt      string          `json:"createdAt,omitempty" db:"created_at"`
}
