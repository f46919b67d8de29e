// ABOUTME: Response DTOs for the location finder endpoints
// ABOUTME: Provides structured responses for searches, exports and geolocation

package responses

import "plantverse-api/core/domain"

// PointResponse represents a coordinate pair
type PointResponse struct {
	Latitude  float64 `json:"latitude" doc:"Latitude in decimal degrees"`
	Longitude float64 `json:"longitude" doc:"Longitude in decimal degrees"`
}

// PlantInfoResponse represents the resolved species for a search
type PlantInfoResponse struct {
	ID             int    `json:"id" doc:"Taxon identifier"`
	ScientificName string `json:"scientific_name" doc:"Scientific name"`
	CommonName     string `json:"common_name" doc:"Preferred common name"`
	Rank           string `json:"rank" doc:"Taxonomic rank"`
}

// ObservationResultResponse represents one distance-ranked observation
type ObservationResultResponse struct {
	LocationName   string           `json:"location_name" doc:"Place description or coordinate fallback"`
	Latitude       float64          `json:"latitude" doc:"Observation latitude"`
	Longitude      float64          `json:"longitude" doc:"Observation longitude"`
	DistanceKm     float64          `json:"distance_km" doc:"Distance from the user, km, 2 decimals"`
	ObservedOn     string           `json:"observed_on" doc:"Observation date"`
	QualityGrade   string           `json:"quality_grade" doc:"Observation quality grade"`
	URL            string           `json:"url" doc:"Link to the observation page"`
	Photos         []string         `json:"photos" doc:"Photo URLs, at most two"`
	Description    string           `json:"description" doc:"Species summary"`
	ScientificName string           `json:"scientific_name" doc:"Scientific name"`
	CommonName     string           `json:"common_name" doc:"Common name"`
	Swatch         *domain.RGBColor `json:"swatch,omitempty" doc:"Dominant color of the first photo"`
}

// LocationSearchResponse represents the response for an observation search
type LocationSearchResponse struct {
	SearchQuery    string                      `json:"search_query" doc:"Original plant name query"`
	UserLocation   PointResponse               `json:"user_location" doc:"Point the search was centered on"`
	SearchRadiusKm int                         `json:"search_radius_km" doc:"Radius used for the search"`
	PlantInfo      PlantInfoResponse           `json:"plant_info" doc:"Resolved species"`
	TotalResults   int                         `json:"total_results" doc:"Number of returned observations"`
	Results        []ObservationResultResponse `json:"results" doc:"Observations ordered by distance"`
}

// LocationExportDocument is the downloadable export of a search
type LocationExportDocument struct {
	SearchQuery    string                      `json:"search_query" doc:"Original plant name query"`
	UserLocation   PointResponse               `json:"user_location" doc:"Point the search was centered on"`
	SearchRadiusKm int                         `json:"search_radius_km" doc:"Radius used for the search"`
	PlantInfo      PlantInfoResponse           `json:"plant_info" doc:"Resolved species"`
	Results        []ObservationResultResponse `json:"results" doc:"Observations ordered by distance"`
}

// GeolocateResponse represents an IP-derived location
type GeolocateResponse struct {
	Latitude  float64 `json:"latitude" doc:"Approximate latitude"`
	Longitude float64 `json:"longitude" doc:"Approximate longitude"`
}
