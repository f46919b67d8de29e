// ABOUTME: Request DTOs for the location finder endpoints
// ABOUTME: Provides validation and default values for observation searches

package requests

// DefaultRadiusKm is the search radius used when a request omits one
const DefaultRadiusKm = 25

// LocationSearchRequest represents the request body for searching nearby
// observations of a plant. The same body drives search and export.
type LocationSearchRequest struct {
	// PlantName is the common or scientific name to search for
	PlantName string `json:"plant_name" required:"true" minLength:"1" doc:"Common or scientific plant name"`

	// Latitude is the user's latitude in decimal degrees
	Latitude float64 `json:"latitude" required:"true" minimum:"-90" maximum:"90" doc:"User latitude"`

	// Longitude is the user's longitude in decimal degrees
	Longitude float64 `json:"longitude" required:"true" minimum:"-180" maximum:"180" doc:"User longitude"`

	// RadiusKm is the search radius in kilometers
	RadiusKm int `json:"radius_km,omitempty" minimum:"1" maximum:"500" default:"25" doc:"Search radius in kilometers"`
}

// ApplyDefaults sets default values for optional fields
func (r *LocationSearchRequest) ApplyDefaults() {
	if r.RadiusKm == 0 {
		r.RadiusKm = DefaultRadiusKm
	}
}
