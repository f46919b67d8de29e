// ABOUTME: Classifier boundary client posting image bytes to a hosted inference endpoint
// ABOUTME: Takes the top-ranked label and confidence from the model's prediction list

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"

	"plantverse-api/core/domain"
	cerrors "plantverse-api/core/errors"
	"plantverse-api/core/interfaces"
)

// ClassifyService sends plant images to the configured image-classification
// model and returns the top prediction. The model itself is an external
// collaborator; this service only speaks its HTTP surface.
type ClassifyService struct {
	deps     interfaces.Dependencies
	endpoint string
	model    string
}

// NewClassifyService creates a new classify service instance.
// endpoint is the inference API root (e.g.,
// "https://api-inference.huggingface.co/models"); model is the hub model id.
func NewClassifyService(deps interfaces.Dependencies, endpoint, model string) *ClassifyService {
	return &ClassifyService{
		deps:     deps,
		endpoint: strings.TrimSuffix(endpoint, "/"),
		model:    model,
	}
}

// Predict classifies an image and returns the highest-confidence label.
func (s *ClassifyService) Predict(ctx context.Context, image []byte) (domain.Prediction, error) {
	if len(image) == 0 {
		return domain.Prediction{}, &cerrors.ValidationError{Field: "image", Message: "image cannot be empty"}
	}

	resp, err := s.deps.HTTPClient.Post(ctx, s.endpoint+"/"+s.model, "application/octet-stream", bytes.NewReader(image))
	if err != nil {
		return domain.Prediction{}, cerrors.WrapError(err, "classification request failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return domain.Prediction{}, &cerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "classifier returned non-200",
			API:        "inference",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return domain.Prediction{}, cerrors.WrapError(err, "failed to read classifier response")
	}

	var predictions []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.Unmarshal(body, &predictions); err != nil {
		return domain.Prediction{}, cerrors.WrapError(err, "failed to parse classifier response")
	}

	if len(predictions) == 0 {
		return domain.Prediction{}, &cerrors.NotFoundError{Resource: "prediction", ID: s.model}
	}

	// The endpoint returns predictions ranked by score; take the top entry.
	return domain.Prediction{
		Label: predictions[0].Label,
		Score: predictions[0].Score,
	}, nil
}
