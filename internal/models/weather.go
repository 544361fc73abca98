package models

// WeatherObservation is one daily observation pushed by the external
// collector, keyed by (FieldID, ObsDate). Measurements are nullable so
// a later push can fill in values an earlier one lacked.
type WeatherObservation struct {
	FieldID         string   `json:"fieldId" db:"field_id"`
	ObsDate         string   `json:"obsDate" db:"obs_date"` // YYYY-MM-DD
	TempMinC        *float64 `json:"tempMinC,omitempty" db:"temp_min_c"`
	TempMaxC        *float64 `json:"tempMaxC,omitempty" db:"temp_max_c"`
	PrecipitationMm *float64 `json:"precipitationMm,omitempty" db:"precipitation_mm"`
	WindKph         *float64 `json:"windKph,omitempty" db:"wind_kph"`
	UpdatedAt       string   `json:"updatedAt,omitempty" db:"updated_at"`
}

// WeatherTarget tells the collector which field to sample for a cluster
// and which members share the result.
type WeatherTarget struct {
	FieldID   string   `json:"fieldId"`
	FieldName string   `json:"fieldName"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
	MemberIDs []string `json:"memberIds"`
}

// FieldWeather is a field's weather view: the observations recorded for
// its cluster's representative, broadcast to every member.
type FieldWeather struct {
	FieldID          string               `json:"fieldId"`
	RepresentativeID string               `json:"representativeId"`
	Observations     []WeatherObservation `json:"observations"`
}
