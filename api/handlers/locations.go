// ABOUTME: Location finder handlers for the Huma API
// ABOUTME: Resolves a species, ranks nearby observations and builds the export

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"plantverse-api/api/dto/mappers"
	"plantverse-api/api/dto/requests"
	"plantverse-api/api/dto/responses"
	"plantverse-api/core/domain"
	"plantverse-api/core/interfaces"
)

// ObservationService interface defines the methods needed from the occurrence service
type ObservationService interface {
	SearchSpecies(ctx context.Context, name string) (*domain.Plant, error)
	Observations(ctx context.Context, taxonID int, point domain.Point, radiusKm int) ([]domain.Observation, error)
	FormatResults(observations []domain.Observation, user domain.Point, plant *domain.Plant, description string) []domain.FormattedResult
}

// SummaryService interface defines the methods needed from the Wikipedia service
type SummaryService interface {
	Summary(ctx context.Context, scientificName string) string
}

// Geolocator interface defines the methods needed from the geoip service
type Geolocator interface {
	Locate(ctx context.Context) (domain.Point, error)
}

// LocationsHandler handles observation search HTTP requests
type LocationsHandler struct {
	observations    ObservationService
	summaries       SummaryService
	geolocator      Geolocator
	colors          interfaces.PhotoColorService
	defaultRadiusKm int
}

// NewLocationsHandler creates a new locations handler.
// colors may be nil to disable swatch enrichment.
func NewLocationsHandler(observations ObservationService, summaries SummaryService, geolocator Geolocator, colors interfaces.PhotoColorService, defaultRadiusKm int) *LocationsHandler {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = requests.DefaultRadiusKm
	}
	return &LocationsHandler{
		observations:    observations,
		summaries:       summaries,
		geolocator:      geolocator,
		colors:          colors,
		defaultRadiusKm: defaultRadiusKm,
	}
}

// RegisterRoutes registers all location finder routes
func (h *LocationsHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchLocations",
		Method:      http.MethodPost,
		Path:        "/locations/search",
		Summary:     "Search nearby observations of a plant",
		Description: "Resolves the species, fetches observations around the user and returns them ordered by distance",
		Tags:        []string{"Locations"},
	}, h.Search)

	huma.Register(api, huma.Operation{
		OperationID: "exportLocations",
		Method:      http.MethodPost,
		Path:        "/locations/export",
		Summary:     "Export an observation search as a JSON download",
		Tags:        []string{"Locations"},
	}, h.Export)

	huma.Register(api, huma.Operation{
		OperationID: "geolocate",
		Method:      http.MethodGet,
		Path:        "/geolocate",
		Summary:     "Approximate the caller's location from its IP",
		Tags:        []string{"Locations"},
	}, h.Geolocate)
}

// SearchInput defines the input for the Search operation
type SearchInput struct {
	Body requests.LocationSearchRequest
}

// SearchOutput defines the output for the Search operation
type SearchOutput struct {
	Body responses.LocationSearchResponse
}

// Search handles the POST /locations/search endpoint
func (h *LocationsHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	plant, user, results, err := h.runSearch(ctx, &input.Body)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &SearchOutput{
		Body: mappers.ToLocationSearchResponse(input.Body.PlantName, user, input.Body.RadiusKm, plant, results),
	}, nil
}

// ExportOutput defines the output for the Export operation
type ExportOutput struct {
	ContentDisposition string `header:"Content-Disposition"`
	Body               responses.LocationExportDocument
}

// Export handles the POST /locations/export endpoint
func (h *LocationsHandler) Export(ctx context.Context, input *SearchInput) (*ExportOutput, error) {
	plant, user, results, err := h.runSearch(ctx, &input.Body)
	if err != nil {
		return nil, toHumaError(err)
	}

	filename := exportFilename(input.Body.PlantName)

	return &ExportOutput{
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Body:               mappers.ToLocationExportDocument(input.Body.PlantName, user, input.Body.RadiusKm, plant, results),
	}, nil
}

// runSearch executes the shared species → summary → observations pipeline
func (h *LocationsHandler) runSearch(ctx context.Context, req *requests.LocationSearchRequest) (*domain.Plant, domain.Point, []domain.FormattedResult, error) {
	if req.RadiusKm == 0 {
		req.RadiusKm = h.defaultRadiusKm
	}
	req.ApplyDefaults()

	user := domain.Point{Lat: req.Latitude, Lon: req.Longitude}

	plant, err := h.observations.SearchSpecies(ctx, req.PlantName)
	if err != nil {
		return nil, user, nil, err
	}

	description := h.summaries.Summary(ctx, plant.Name)

	observations, err := h.observations.Observations(ctx, plant.ID, user, req.RadiusKm)
	if err != nil {
		return nil, user, nil, err
	}

	results := h.observations.FormatResults(observations, user, plant, description)
	h.attachSwatches(ctx, results)

	return plant, user, results, nil
}

// attachSwatches decorates each result with its first photo's dominant color
func (h *LocationsHandler) attachSwatches(ctx context.Context, results []domain.FormattedResult) {
	if h.colors == nil {
		return
	}

	urls := make([]string, 0, len(results))
	for _, r := range results {
		if len(r.Photos) > 0 {
			urls = append(urls, r.Photos[0])
		}
	}
	if len(urls) == 0 {
		return
	}

	colors := h.colors.ExtractColorBatch(ctx, urls)
	for i := range results {
		if len(results[i].Photos) > 0 {
			results[i].Swatch = colors[results[i].Photos[0]]
		}
	}
}

// GeolocateOutput defines the output for the Geolocate operation
type GeolocateOutput struct {
	Body responses.GeolocateResponse
}

// Geolocate handles the GET /geolocate endpoint
func (h *LocationsHandler) Geolocate(ctx context.Context, _ *struct{}) (*GeolocateOutput, error) {
	point, err := h.geolocator.Locate(ctx)
	if err != nil {
		return nil, toHumaError(err)
	}

	return &GeolocateOutput{
		Body: responses.GeolocateResponse{
			Latitude:  point.Lat,
			Longitude: point.Lon,
		},
	}, nil
}

// exportFilename builds the download filename for a search query
func exportFilename(plantName string) string {
	underscored := strings.ReplaceAll(strings.TrimSpace(plantName), " ", "_")
	return "plant_locations_" + underscored + ".json"
}
