package models

// Field represents a farm field. Lat/Lon are nil for fields whose
// boundary has no resolvable center ("locationless" fields).
type Field struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Lat       *float64 `json:"lat,omitempty" db:"lat"`
	Lon       *float64 `json:"lon,omitempty" db:"lon"`
	CreatedAt string   `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt string   `json:"updatedAt,omitempty" db:"updated_at"`
}

// HasCenter reports whether the field has a resolvable geographic center.
func (f Field) HasCenter() bool {
	return f.Lat != nil && f.Lon != nil
}

// FieldsResponse represents a paginated response of fields
type FieldsResponse struct {
	Data       []Field `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}
