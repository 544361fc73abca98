package models

// GapStats summarizes the day gaps between consecutive herbicide
// applications of one (field, season) group.
type GapStats struct {
	Count      int     `json:"count"`
	MinDays    float64 `json:"minDays"`
	MaxDays    float64 `json:"maxDays"`
	MeanDays   float64 `json:"meanDays"`
	MedianDays float64 `json:"medianDays"`
	P90Days    float64 `json:"p90Days"`
}

// SprayGapSummary is the per-group re-application summary served by the
// analytics endpoint. SeasonID is "none" for seasonless groups.
type SprayGapSummary struct {
	FieldID      string   `json:"fieldId"`
	SeasonID     string   `json:"seasonId"`
	Applications int      `json:"applications"`
	Alerts       int      `json:"alerts"`
	Gaps         GapStats `json:"gaps"`
}
