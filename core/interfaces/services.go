// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for services used throughout the application

package interfaces

import (
	"context"

	"plantverse-api/core/domain"
)

// PhotoColorService extracts dominant colors from observation photos
type PhotoColorService interface {
	ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error)
	ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor
}

// Translator converts English text into a target language on a best-effort
// basis. Implementations must return the input unchanged on any failure.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) string
}
