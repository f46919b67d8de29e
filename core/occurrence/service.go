// ABOUTME: Occurrence service for species lookup and nearby observation search
// ABOUTME: Queries the iNaturalist API and ranks observations by haversine distance

package occurrence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	"plantverse-api/core/domain"
	cerrors "plantverse-api/core/errors"
	"plantverse-api/core/interfaces"
)

const (
	observationsPerPage = 50
	maxPhotosPerResult  = 2
	speciesCacheTTL     = 24 * time.Hour
)

// OccurrenceService handles species search and observation retrieval.
type OccurrenceService struct {
	deps    interfaces.Dependencies
	baseURL string
}

// NewOccurrenceService creates a new occurrence service instance.
// baseURL is the observation API root (e.g., "https://api.inaturalist.org/v1").
func NewOccurrenceService(deps interfaces.Dependencies, baseURL string) *OccurrenceService {
	return &OccurrenceService{
		deps:    deps,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// SearchSpecies resolves a common or scientific plant name to a species
// taxon. Returns a NotFoundError when the search yields no results.
func (s *OccurrenceService) SearchSpecies(ctx context.Context, name string) (*domain.Plant, error) {
	if name == "" {
		return nil, &cerrors.ValidationError{Field: "plant_name", Message: "plant name cannot be empty"}
	}

	cacheKey := "species:" + name
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var plant domain.Plant
			if err := json.Unmarshal(data, &plant); err == nil {
				return &plant, nil
			}
		}
	}

	searchURL := fmt.Sprintf("%s/taxa?q=%s&rank=species&is_active=true&per_page=1",
		s.baseURL, url.QueryEscape(name))

	resp, err := s.deps.HTTPClient.Get(ctx, searchURL)
	if err != nil {
		return nil, cerrors.WrapError(err, "species search failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &cerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "species search returned non-200",
			API:        "inaturalist",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, cerrors.WrapError(err, "failed to read species response")
	}

	var apiResponse struct {
		Results []struct {
			ID                  int    `json:"id"`
			Name                string `json:"name"`
			PreferredCommonName string `json:"preferred_common_name"`
			Rank                string `json:"rank"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, cerrors.WrapError(err, "failed to parse species response")
	}

	if len(apiResponse.Results) == 0 {
		return nil, &cerrors.NotFoundError{Resource: "plant species", ID: name}
	}

	top := apiResponse.Results[0]
	plant := &domain.Plant{
		ID:         top.ID,
		Name:       top.Name,
		CommonName: top.PreferredCommonName,
		Rank:       top.Rank,
	}

	if s.deps.Cache != nil {
		if data, err := json.Marshal(plant); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, speciesCacheTTL)
		}
	}

	return plant, nil
}

// Observations fetches recent observations of a taxon within radiusKm of a
// point. Records without geometry are kept here and filtered by the
// formatter, mirroring the upstream response.
func (s *OccurrenceService) Observations(ctx context.Context, taxonID int, point domain.Point, radiusKm int) ([]domain.Observation, error) {
	query := url.Values{}
	query.Set("taxon_id", fmt.Sprintf("%d", taxonID))
	query.Set("lat", fmt.Sprintf("%f", point.Lat))
	query.Set("lng", fmt.Sprintf("%f", point.Lon))
	query.Set("radius", fmt.Sprintf("%d", radiusKm))
	query.Set("per_page", fmt.Sprintf("%d", observationsPerPage))
	query.Set("order", "desc")
	query.Set("order_by", "observed_on")
	query.Set("quality_grade", "research,needs_id")
	query.Set("photos", "true")
	query.Set("geo", "true")

	resp, err := s.deps.HTTPClient.Get(ctx, s.baseURL+"/observations?"+query.Encode())
	if err != nil {
		return nil, cerrors.WrapError(err, "observation search failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, &cerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "observation search returned non-200",
			API:        "inaturalist",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, cerrors.WrapError(err, "failed to read observations response")
	}

	var apiResponse struct {
		Results []struct {
			GeoJSON *struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geojson"`
			ObservedOnString string `json:"observed_on_string"`
			QualityGrade     string `json:"quality_grade"`
			URI              string `json:"uri"`
			PlaceGuess       string `json:"place_guess"`
			Photos           []struct {
				URL string `json:"url"`
			} `json:"photos"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &apiResponse); err != nil {
		return nil, cerrors.WrapError(err, "failed to parse observations response")
	}

	observations := make([]domain.Observation, 0, len(apiResponse.Results))
	for _, r := range apiResponse.Results {
		obs := domain.Observation{
			ObservedOn:   r.ObservedOnString,
			QualityGrade: r.QualityGrade,
			URI:          r.URI,
			PlaceGuess:   r.PlaceGuess,
		}
		// GeoJSON order is [longitude, latitude]
		if r.GeoJSON != nil && len(r.GeoJSON.Coordinates) >= 2 {
			obs.Location = &domain.Point{
				Lat: r.GeoJSON.Coordinates[1],
				Lon: r.GeoJSON.Coordinates[0],
			}
		}
		for _, p := range r.Photos {
			obs.Photos = append(obs.Photos, p.URL)
		}
		observations = append(observations, obs)
	}

	return observations, nil
}

// FormatResults augments observations with the distance from the user and
// denormalized plant metadata, drops records without coordinates, and sorts
// ascending by distance.
func (s *OccurrenceService) FormatResults(observations []domain.Observation, user domain.Point, plant *domain.Plant, description string) []domain.FormattedResult {
	results := make([]domain.FormattedResult, 0, len(observations))

	scientificName := "Unknown"
	commonName := "Unknown"
	if plant != nil {
		if plant.Name != "" {
			scientificName = plant.Name
		}
		if plant.CommonName != "" {
			commonName = plant.CommonName
		}
	}

	for _, obs := range observations {
		if obs.Location == nil {
			continue
		}

		distance := domain.RoundKm(domain.HaversineKm(user, *obs.Location))

		locationName := obs.PlaceGuess
		if locationName == "" {
			locationName = fmt.Sprintf("Location (%.4f, %.4f)", obs.Location.Lat, obs.Location.Lon)
		}

		observedOn := obs.ObservedOn
		if observedOn == "" {
			observedOn = "Unknown date"
		}

		quality := obs.QualityGrade
		if quality == "" {
			quality = "unknown"
		}

		photos := obs.Photos
		if len(photos) > maxPhotosPerResult {
			photos = photos[:maxPhotosPerResult]
		}

		results = append(results, domain.FormattedResult{
			LocationName:   locationName,
			Latitude:       obs.Location.Lat,
			Longitude:      obs.Location.Lon,
			DistanceKm:     distance,
			ObservedOn:     observedOn,
			QualityGrade:   quality,
			URL:            obs.URI,
			Photos:         photos,
			Description:    description,
			ScientificName: scientificName,
			CommonName:     commonName,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	return results
}
