package models

// Product categories as used by the catalog.
const (
	CategoryHerbicide   = "HERBICIDE"
	CategoryFungicide   = "FUNGICIDE"
	CategoryInsecticide = "INSECTICIDE"
	CategoryFertilizer  = "FERTILIZER"
)

// Product is one catalog entry. The catalog is scoped per crop: the same
// agent may appear under several crops with different registrations.
type Product struct {
	ID       string `json:"id" db:"id" yaml:"id"`
	Name     string `json:"name" db:"name" yaml:"name"`
	CropID   string `json:"cropId" db:"crop_id" yaml:"cropId"`
	Category string `json:"category" db:"category" yaml:"category"`
}
