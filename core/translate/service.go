// ABOUTME: Best-effort translation passthrough over the public gtx endpoint
// ABOUTME: Returns the original text unchanged on any failure so the pipeline never blocks

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"plantverse-api/core/interfaces"
)

// sourceLang is fixed: all upstream content arrives in English.
const sourceLang = "en"

// TranslateService translates English text to a target language using the
// public translate endpoint. It intentionally has no error return anywhere:
// translation is decoration, never a dependency.
type TranslateService struct {
	deps    interfaces.Dependencies
	baseURL string
}

// NewTranslateService creates a new translate service instance.
// baseURL is the endpoint (e.g., "https://translate.googleapis.com/translate_a/single").
func NewTranslateService(deps interfaces.Dependencies, baseURL string) *TranslateService {
	return &TranslateService{
		deps:    deps,
		baseURL: baseURL,
	}
}

// Translate converts text into targetLang. English targets and empty input
// short-circuit without a network call. Every failure mode returns the
// input unchanged.
func (s *TranslateService) Translate(ctx context.Context, text, targetLang string) string {
	if text == "" || targetLang == "" || targetLang == sourceLang {
		return text
	}

	requestURL := fmt.Sprintf("%s?client=gtx&sl=%s&tl=%s&dt=t&q=%s",
		s.baseURL, sourceLang, url.QueryEscape(targetLang), url.QueryEscape(text))

	resp, err := s.deps.HTTPClient.Get(ctx, requestURL)
	if err != nil {
		s.logFallback(text, err.Error())
		return text
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		s.logFallback(text, fmt.Sprintf("status %d", resp.StatusCode()))
		return text
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		s.logFallback(text, err.Error())
		return text
	}

	translated, ok := firstTranslation(body)
	if !ok {
		s.logFallback(text, "malformed response")
		return text
	}
	return translated
}

// firstTranslation digs data[0][0][0] out of the nested-array response.
func firstTranslation(body []byte) (string, bool) {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil || len(outer) == 0 {
		return "", false
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(outer[0], &segments); err != nil || len(segments) == 0 {
		return "", false
	}

	var first []json.RawMessage
	if err := json.Unmarshal(segments[0], &first); err != nil || len(first) == 0 {
		return "", false
	}

	var translated string
	if err := json.Unmarshal(first[0], &translated); err != nil {
		return "", false
	}
	return translated, true
}

func (s *TranslateService) logFallback(text, reason string) {
	if s.deps.Logger != nil {
		s.deps.Logger.Debug("Translation failed, returning original text", map[string]interface{}{
			"reason": reason,
			"length": len(text),
		})
	}
}
