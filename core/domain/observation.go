// ABOUTME: Observation domain models for crowd-sourced species sightings
// ABOUTME: Defines raw observation records and distance-ranked formatted results

package domain

// Observation represents a single sighting returned by the observation service.
// Records live only for the duration of one search request.
type Observation struct {
	// Location is the observation coordinate, nil when the record has no geometry
	Location *Point

	// ObservedOn is the free-form capture date string
	ObservedOn string

	// QualityGrade is the service's confidence classification (e.g., "research")
	QualityGrade string

	// URI links back to the observation page
	URI string

	// Photos holds photo URLs attached to the observation
	Photos []string

	// PlaceGuess is the free-text place description, may be empty
	PlaceGuess string
}

// FormattedResult is an observation augmented with the distance from the user
// and denormalized plant metadata, ready for presentation.
type FormattedResult struct {
	LocationName   string    `json:"location_name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	DistanceKm     float64   `json:"distance_km"`
	ObservedOn     string    `json:"observed_on"`
	QualityGrade   string    `json:"quality_grade"`
	URL            string    `json:"url"`
	Photos         []string  `json:"photos"`
	Description    string    `json:"description"`
	ScientificName string    `json:"scientific_name"`
	CommonName     string    `json:"common_name"`
	Swatch         *RGBColor `json:"swatch,omitempty"`
}
