// ABOUTME: Photo color extraction service for observation result cards
// ABOUTME: Uses K-means clustering to find the dominant color in an observation photo

package services

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	_ "golang.org/x/image/webp" // WebP support

	"plantverse-api/core/domain"
	"plantverse-api/core/interfaces"
)

const (
	defaultColorValue = 128
	colorCacheTTL     = 24 * time.Hour
	batchConcurrency  = 5
)

// PhotoColorService derives a UI accent color from the first photo of each
// formatted observation result.
type PhotoColorService struct {
	deps interfaces.Dependencies
}

// NewPhotoColorService creates a new photo color service
func NewPhotoColorService(deps interfaces.Dependencies) *PhotoColorService {
	return &PhotoColorService{deps: deps}
}

// ExtractColor extracts the dominant color from a photo URL. Any failure
// yields the neutral default color, never an error the caller must handle.
func (s *PhotoColorService) ExtractColor(ctx context.Context, imageURL string) (*domain.RGBColor, error) {
	if imageURL == "" {
		return s.defaultColor(), nil
	}

	cacheKey := "photoColor:" + imageURL
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var color domain.RGBColor
			if _, err := fmt.Sscanf(string(data), "%d,%d,%d", &color.R, &color.G, &color.B); err == nil {
				return &color, nil
			}
		}
	}

	color, err := s.extractFromURL(ctx, imageURL)
	if err != nil {
		if s.deps.Logger != nil {
			s.deps.Logger.Debug("Failed to extract photo color", map[string]interface{}{
				"url":   imageURL,
				"error": err.Error(),
			})
		}
		color = s.defaultColor()
	}

	if s.deps.Cache != nil {
		cacheData := fmt.Sprintf("%d,%d,%d", color.R, color.G, color.B)
		_ = s.deps.Cache.Set(ctx, cacheKey, []byte(cacheData), colorCacheTTL)
	}

	return color, nil
}

// extractFromURL downloads and extracts the dominant color from an image
func (s *PhotoColorService) extractFromURL(ctx context.Context, imageURL string) (color *domain.RGBColor, err error) {
	// K-means can panic on degenerate images
	defer func() {
		if rec := recover(); rec != nil {
			color = nil
			err = fmt.Errorf("panic recovered: %v", rec)
		}
	}()

	if strings.HasSuffix(strings.ToLower(imageURL), ".svg") {
		return nil, fmt.Errorf("SVG images are not supported")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body(), 10<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has empty bounds")
	}

	imgNRGBA := image.NewNRGBA(bounds)
	draw.Draw(imgNRGBA, bounds, img, bounds.Min, draw.Src)

	colors, err := prominentcolor.KmeansWithAll(
		prominentcolor.ArgumentDefault,
		imgNRGBA,
		prominentcolor.DefaultK,
		1,
		prominentcolor.GetDefaultMasks(),
	)
	if err != nil || len(colors) == 0 {
		// Masks can eliminate every pixel on small photos
		colors, err = prominentcolor.KmeansWithAll(
			prominentcolor.ArgumentDefault,
			imgNRGBA,
			prominentcolor.DefaultK,
			1,
			nil,
		)
		if err != nil || len(colors) == 0 {
			return nil, fmt.Errorf("no colors extracted from image")
		}
	}

	return &domain.RGBColor{
		R: uint8(colors[0].Color.R),
		G: uint8(colors[0].Color.G),
		B: uint8(colors[0].Color.B),
	}, nil
}

// ExtractColorBatch extracts colors for multiple photo URLs concurrently
func (s *PhotoColorService) ExtractColorBatch(ctx context.Context, imageURLs []string) map[string]*domain.RGBColor {
	results := make(map[string]*domain.RGBColor)
	var mu sync.Mutex
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, batchConcurrency)

	for _, u := range imageURLs {
		wg.Add(1)
		go func(imageURL string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if color, err := s.ExtractColor(ctx, imageURL); err == nil && color != nil {
				mu.Lock()
				results[imageURL] = color
				mu.Unlock()
			}
		}(u)
	}

	wg.Wait()
	return results
}

// defaultColor returns the neutral gray used when extraction fails
func (s *PhotoColorService) defaultColor() *domain.RGBColor {
	return &domain.RGBColor{
		R: defaultColorValue,
		G: defaultColorValue,
		B: defaultColorValue,
	}
}
