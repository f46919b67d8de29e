// ABOUTME: Response DTOs for the species identifier endpoints
// ABOUTME: Provides structured responses with JSON serialization

package responses

import "plantverse-api/core/domain"

// IdentifyResponse represents the full identification result for an image.
// Taxonomy and uses are best-effort: their failures surface inline without
// failing the whole request.
type IdentifyResponse struct {
	ScientificName string          `json:"scientific_name" doc:"Predicted species name"`
	Confidence     float64         `json:"confidence" doc:"Classifier confidence in [0,1]"`
	WikipediaTitle string          `json:"wikipedia_title" doc:"Resolved Wikipedia article title"`
	Taxonomy       *domain.Lineage `json:"taxonomy,omitempty" doc:"Ordered rank to scientific name map"`
	TaxonomyError  string          `json:"taxonomy_error,omitempty" doc:"Reason taxonomy could not be resolved"`
	MedicinalUses  []string        `json:"medicinal_uses" doc:"Medicinal use sentences in the requested language"`
	Language       string          `json:"language" doc:"Language of the medicinal uses"`
}

// TaxonomyResponse represents a standalone taxonomy lookup result
type TaxonomyResponse struct {
	Name     string          `json:"name" doc:"Queried plant name"`
	Taxonomy *domain.Lineage `json:"taxonomy" doc:"Ordered rank to scientific name map"`
}

// UsesResponse represents a standalone medicinal uses lookup result
type UsesResponse struct {
	Title         string   `json:"title" doc:"Wikipedia article title"`
	Language      string   `json:"language" doc:"Language of the sentences"`
	MedicinalUses []string `json:"medicinal_uses" doc:"Medicinal use sentences"`
}

// LanguageResponse represents one supported output language
type LanguageResponse struct {
	Code string `json:"code" doc:"ISO 639-1 language code"`
	Name string `json:"name" doc:"Language display name"`
}

// LanguagesResponse lists the supported output languages
type LanguagesResponse struct {
	Languages []LanguageResponse `json:"languages" doc:"Supported output languages"`
}
