// ABOUTME: Plant domain models for species search and identification results
// ABOUTME: Defines structures shared by the identifier and location finder flows

package domain

// Plant represents a species resolved from the observation service.
type Plant struct {
	// ID is the taxon identifier assigned by the observation service
	ID int

	// Name is the scientific name (e.g., "Azadirachta indica")
	Name string

	// CommonName is the preferred common name (e.g., "Neem")
	CommonName string

	// Rank is the taxonomic rank reported by the service (e.g., "species")
	Rank string
}

// Prediction represents a single classifier result for an uploaded image.
type Prediction struct {
	// Label is the predicted species label
	Label string

	// Score is the classifier confidence in [0, 1]
	Score float64
}

// RGBColor represents an RGB color value
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}
