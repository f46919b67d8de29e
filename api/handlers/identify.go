// ABOUTME: Species identifier handlers for the Huma API
// ABOUTME: Chains classification, title resolution, taxonomy and medicinal uses

package handlers

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"plantverse-api/api/dto/requests"
	"plantverse-api/api/dto/responses"
	"plantverse-api/core/domain"
	"plantverse-api/core/errors"
)

// noUsesMessage is surfaced inline when no medicinal section exists
const noUsesMessage = "No specific medicinal uses found."

// supportedLanguages is the fixed output language table
var supportedLanguages = []responses.LanguageResponse{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "Hindi"},
	{Code: "te", Name: "Telugu"},
	{Code: "ta", Name: "Tamil"},
}

// Classifier interface defines the methods needed from the classify service
type Classifier interface {
	Predict(ctx context.Context, image []byte) (domain.Prediction, error)
}

// TaxonomyResolver interface defines the methods needed from the taxonomy service
type TaxonomyResolver interface {
	Resolve(ctx context.Context, label string) (domain.Lineage, error)
}

// ArticleService interface defines the methods needed from the Wikipedia service
type ArticleService interface {
	SearchTitle(ctx context.Context, name string) string
	MedicinalUses(ctx context.Context, title, targetLang string) ([]string, error)
}

// IdentifyHandler handles species identification HTTP requests
type IdentifyHandler struct {
	classifier Classifier
	taxonomy   TaxonomyResolver
	articles   ArticleService
}

// NewIdentifyHandler creates a new identify handler
func NewIdentifyHandler(classifier Classifier, taxonomy TaxonomyResolver, articles ArticleService) *IdentifyHandler {
	return &IdentifyHandler{
		classifier: classifier,
		taxonomy:   taxonomy,
		articles:   articles,
	}
}

// RegisterRoutes registers all identifier routes
func (h *IdentifyHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "identifyPlant",
		Method:      http.MethodPost,
		Path:        "/identify",
		Summary:     "Identify a plant from an image",
		Description: "Classifies an uploaded plant image, then resolves its Wikipedia title, taxonomic lineage and medicinal uses",
		Tags:        []string{"Identifier"},
	}, h.Identify)

	huma.Register(api, huma.Operation{
		OperationID: "getTaxonomy",
		Method:      http.MethodGet,
		Path:        "/taxonomy",
		Summary:     "Resolve taxonomic lineage for a plant name",
		Tags:        []string{"Identifier"},
	}, h.GetTaxonomy)

	huma.Register(api, huma.Operation{
		OperationID: "getMedicinalUses",
		Method:      http.MethodGet,
		Path:        "/uses",
		Summary:     "Extract medicinal uses from a Wikipedia article",
		Tags:        []string{"Identifier"},
	}, h.GetUses)

	huma.Register(api, huma.Operation{
		OperationID: "listLanguages",
		Method:      http.MethodGet,
		Path:        "/languages",
		Summary:     "List supported output languages",
		Tags:        []string{"Identifier"},
	}, h.ListLanguages)
}

// IdentifyInput defines the input for the Identify operation
type IdentifyInput struct {
	Body requests.IdentifyRequest
}

// IdentifyOutput defines the output for the Identify operation
type IdentifyOutput struct {
	Body responses.IdentifyResponse
}

// Identify handles the POST /identify endpoint.
// Classification failures fail the request; taxonomy and uses failures
// surface inline so a partial identification still returns.
func (h *IdentifyHandler) Identify(ctx context.Context, input *IdentifyInput) (*IdentifyOutput, error) {
	input.Body.ApplyDefaults()

	image, err := decodeImage(input.Body.ImageBase64)
	if err != nil {
		return nil, toHumaError(err)
	}

	prediction, err := h.classifier.Predict(ctx, image)
	if err != nil {
		return nil, toHumaError(err)
	}

	title := h.articles.SearchTitle(ctx, prediction.Label)

	resp := responses.IdentifyResponse{
		ScientificName: prediction.Label,
		Confidence:     prediction.Score,
		WikipediaTitle: title,
		Language:       input.Body.Language,
	}

	if lineage, err := h.taxonomy.Resolve(ctx, title); err != nil {
		resp.TaxonomyError = err.Error()
	} else {
		resp.Taxonomy = &lineage
	}

	uses, err := h.articles.MedicinalUses(ctx, title, input.Body.Language)
	if err != nil || len(uses) == 0 {
		resp.MedicinalUses = []string{noUsesMessage}
	} else {
		resp.MedicinalUses = uses
	}

	return &IdentifyOutput{Body: resp}, nil
}

// GetTaxonomyInput defines the input for the GetTaxonomy operation
type GetTaxonomyInput struct {
	Name string `query:"name" required:"true" minLength:"1" doc:"Plant name or Wikipedia title"`
}

// GetTaxonomyOutput defines the output for the GetTaxonomy operation
type GetTaxonomyOutput struct {
	Body responses.TaxonomyResponse
}

// GetTaxonomy handles the GET /taxonomy endpoint
func (h *IdentifyHandler) GetTaxonomy(ctx context.Context, input *GetTaxonomyInput) (*GetTaxonomyOutput, error) {
	lineage, err := h.taxonomy.Resolve(ctx, input.Name)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &GetTaxonomyOutput{
		Body: responses.TaxonomyResponse{
			Name:     input.Name,
			Taxonomy: &lineage,
		},
	}, nil
}

// GetUsesInput defines the input for the GetUses operation
type GetUsesInput struct {
	Title string `query:"title" required:"true" minLength:"1" doc:"Wikipedia article title"`
	Lang  string `query:"lang" enum:"en,hi,te,ta" doc:"Output language code"`
}

// GetUsesOutput defines the output for the GetUses operation
type GetUsesOutput struct {
	Body responses.UsesResponse
}

// GetUses handles the GET /uses endpoint
func (h *IdentifyHandler) GetUses(ctx context.Context, input *GetUsesInput) (*GetUsesOutput, error) {
	lang := input.Lang
	if lang == "" {
		lang = requests.DefaultLanguage
	}

	uses, err := h.articles.MedicinalUses(ctx, input.Title, lang)
	if err != nil {
		return nil, toHumaError(err)
	}
	if len(uses) == 0 {
		uses = []string{noUsesMessage}
	}

	return &GetUsesOutput{
		Body: responses.UsesResponse{
			Title:         input.Title,
			Language:      lang,
			MedicinalUses: uses,
		},
	}, nil
}

// ListLanguagesOutput defines the output for the ListLanguages operation
type ListLanguagesOutput struct {
	Body responses.LanguagesResponse
}

// ListLanguages handles the GET /languages endpoint
func (h *IdentifyHandler) ListLanguages(ctx context.Context, _ *struct{}) (*ListLanguagesOutput, error) {
	return &ListLanguagesOutput{
		Body: responses.LanguagesResponse{Languages: supportedLanguages},
	}, nil
}

// decodeImage decodes a base64 image payload, tolerating data URL prefixes
func decodeImage(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}

	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &errors.ValidationError{
			Field:   "image_base64",
			Message: "invalid base64 encoding",
		}
	}
	if len(image) == 0 {
		return nil, &errors.ValidationError{
			Field:   "image_base64",
			Message: "decoded image is empty",
		}
	}

	return image, nil
}
