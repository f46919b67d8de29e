// ABOUTME: Mappers converting domain models to API response DTOs
// ABOUTME: Keeps presentation shapes out of the core packages

package mappers

import (
	"plantverse-api/api/dto/responses"
	"plantverse-api/core/domain"
)

// ToPlantInfoResponse converts a resolved species to its response DTO
func ToPlantInfoResponse(plant *domain.Plant) responses.PlantInfoResponse {
	if plant == nil {
		return responses.PlantInfoResponse{}
	}
	return responses.PlantInfoResponse{
		ID:             plant.ID,
		ScientificName: plant.Name,
		CommonName:     plant.CommonName,
		Rank:           plant.Rank,
	}
}

// ToObservationResultResponse converts one formatted observation
func ToObservationResultResponse(result domain.FormattedResult) responses.ObservationResultResponse {
	return responses.ObservationResultResponse{
		LocationName:   result.LocationName,
		Latitude:       result.Latitude,
		Longitude:      result.Longitude,
		DistanceKm:     result.DistanceKm,
		ObservedOn:     result.ObservedOn,
		QualityGrade:   result.QualityGrade,
		URL:            result.URL,
		Photos:         result.Photos,
		Description:    result.Description,
		ScientificName: result.ScientificName,
		CommonName:     result.CommonName,
		Swatch:         result.Swatch,
	}
}

// ToObservationResultResponses converts a ranked result list, preserving order
func ToObservationResultResponses(results []domain.FormattedResult) []responses.ObservationResultResponse {
	out := make([]responses.ObservationResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ToObservationResultResponse(r))
	}
	return out
}

// ToLocationSearchResponse assembles the search response
func ToLocationSearchResponse(query string, user domain.Point, radiusKm int, plant *domain.Plant, results []domain.FormattedResult) responses.LocationSearchResponse {
	mapped := ToObservationResultResponses(results)
	return responses.LocationSearchResponse{
		SearchQuery:    query,
		UserLocation:   responses.PointResponse{Latitude: user.Lat, Longitude: user.Lon},
		SearchRadiusKm: radiusKm,
		PlantInfo:      ToPlantInfoResponse(plant),
		TotalResults:   len(mapped),
		Results:        mapped,
	}
}

// ToLocationExportDocument assembles the downloadable export document
func ToLocationExportDocument(query string, user domain.Point, radiusKm int, plant *domain.Plant, results []domain.FormattedResult) responses.LocationExportDocument {
	return responses.LocationExportDocument{
		SearchQuery:    query,
		UserLocation:   responses.PointResponse{Latitude: user.Lat, Longitude: user.Lon},
		SearchRadiusKm: radiusKm,
		PlantInfo:      ToPlantInfoResponse(plant),
		Results:        ToObservationResultResponses(results),
	}
}
