// ABOUTME: IP geolocation service returning the caller's approximate coordinates
// ABOUTME: Wraps the ip-api.com endpoint used for the auto-detect location option

package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"plantverse-api/core/domain"
	cerrors "plantverse-api/core/errors"
	"plantverse-api/core/interfaces"
)

// GeoIPService resolves the server's public IP to an approximate point.
// The result is approximate by nature; callers fall back to manual entry.
type GeoIPService struct {
	deps    interfaces.Dependencies
	baseURL string
}

// NewGeoIPService creates a new geolocation service instance.
// baseURL is the lookup endpoint (e.g., "http://ip-api.com/json").
func NewGeoIPService(deps interfaces.Dependencies, baseURL string) *GeoIPService {
	return &GeoIPService{
		deps:    deps,
		baseURL: baseURL,
	}
}

// Locate returns the approximate coordinates for the current public IP.
func (s *GeoIPService) Locate(ctx context.Context) (domain.Point, error) {
	resp, err := s.deps.HTTPClient.Get(ctx, s.baseURL)
	if err != nil {
		return domain.Point{}, cerrors.WrapError(err, "geolocation request failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return domain.Point{}, &cerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "geolocation returned non-200",
			API:        "ip-api",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return domain.Point{}, cerrors.WrapError(err, "failed to read geolocation response")
	}

	// Lat/Lon are pointers so an absent field is distinguishable from 0,0.
	var result struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.Point{}, cerrors.WrapError(err, "failed to parse geolocation response")
	}

	if result.Lat == nil || result.Lon == nil {
		return domain.Point{}, errors.New("geolocation response missing coordinates")
	}

	return domain.Point{Lat: *result.Lat, Lon: *result.Lon}, nil
}
