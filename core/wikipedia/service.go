// ABOUTME: Wikipedia service for title search, page summaries, and medicinal-uses extraction
// ABOUTME: Scans article sections for medicinal headings and distills them into bullet sentences

package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	cerrors "plantverse-api/core/errors"
	"plantverse-api/core/interfaces"
	"plantverse-api/pkg/utils/text"
)

const (
	// minSentenceWords filters out fragments too short to be informative.
	minSentenceWords = 5

	// maxUseBullets caps the uses list shown to the user.
	maxUseBullets = 5

	// disclaimerPrefix marks boilerplate efficacy disclaimers that are
	// excluded regardless of length.
	disclaimerPrefix = "there is insufficient"

	noDescription = "Description not available from Wikipedia."

	titleCacheTTL   = 24 * time.Hour
	summaryCacheTTL = 24 * time.Hour
)

// WikipediaService wraps the MediaWiki action API and the REST summary API.
type WikipediaService struct {
	deps       interfaces.Dependencies
	apiURL     string
	restURL    string
	translator interfaces.Translator
}

// NewWikipediaService creates a new Wikipedia service instance.
// apiURL is the action API endpoint (".../w/api.php"); restURL is the REST
// root (".../api/rest_v1"). translator may be nil to disable translation.
func NewWikipediaService(deps interfaces.Dependencies, apiURL, restURL string, translator interfaces.Translator) *WikipediaService {
	return &WikipediaService{
		deps:       deps,
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		restURL:    strings.TrimSuffix(restURL, "/"),
		translator: translator,
	}
}

// SearchTitle resolves a free-text name to the best-matching article title.
// On no match or any failure the original name is returned, so callers can
// always proceed with something.
func (s *WikipediaService) SearchTitle(ctx context.Context, name string) string {
	if name == "" {
		return name
	}

	cacheKey := "wikititle:" + name
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			return string(data)
		}
	}

	searchURL := fmt.Sprintf("%s?action=query&list=search&srsearch=%s&format=json",
		s.apiURL, url.QueryEscape(name))

	resp, err := s.deps.HTTPClient.Get(ctx, searchURL)
	if err != nil {
		return name
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return name
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return name
	}

	var result struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.Unmarshal(body, &result); err != nil || len(result.Query.Search) == 0 {
		return name
	}

	title := result.Query.Search[0].Title
	if s.deps.Cache != nil {
		_ = s.deps.Cache.Set(ctx, cacheKey, []byte(title), titleCacheTTL)
	}
	return title
}

// Summary fetches the plain-text page extract for a scientific name, falling
// back to the genus (first word) when the full binomial has no page. All
// failures collapse to a fixed "not available" sentinel.
func (s *WikipediaService) Summary(ctx context.Context, scientificName string) string {
	if scientificName == "" {
		return noDescription
	}

	cacheKey := "summary:" + scientificName
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			return string(data)
		}
	}

	extract := s.fetchExtract(ctx, strings.ReplaceAll(scientificName, " ", "_"))
	if extract == "" {
		if genus := strings.Fields(scientificName); len(genus) > 0 {
			extract = s.fetchExtract(ctx, genus[0])
		}
	}
	if extract == "" {
		return noDescription
	}

	if s.deps.Cache != nil {
		_ = s.deps.Cache.Set(ctx, cacheKey, []byte(extract), summaryCacheTTL)
	}
	return extract
}

func (s *WikipediaService) fetchExtract(ctx context.Context, title string) string {
	summaryURL := fmt.Sprintf("%s/page/summary/%s", s.restURL, url.PathEscape(title))

	resp, err := s.deps.HTTPClient.Get(ctx, summaryURL)
	if err != nil {
		return ""
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return ""
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return ""
	}

	var result struct {
		Extract string `json:"extract"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return ""
	}
	return result.Extract
}

// MedicinalUses extracts up to five bullet sentences from the first article
// section whose heading mentions medicinal or traditional-medicine use.
// An empty slice with nil error means no data: either no matching section
// exists or nothing survived the sentence filter.
func (s *WikipediaService) MedicinalUses(ctx context.Context, title, targetLang string) ([]string, error) {
	sectionIndex, err := s.findMedicinalSection(ctx, title)
	if err != nil {
		return nil, err
	}
	if sectionIndex == "" {
		return nil, nil
	}

	html, err := s.fetchSectionHTML(ctx, title, sectionIndex)
	if err != nil {
		return nil, err
	}

	bullets := s.extractBullets(ctx, html, targetLang)
	return bullets, nil
}

// findMedicinalSection returns the index of the first matching section, or
// "" when no heading qualifies.
func (s *WikipediaService) findMedicinalSection(ctx context.Context, title string) (string, error) {
	sectionsURL := fmt.Sprintf("%s?action=parse&page=%s&prop=sections&format=json",
		s.apiURL, url.QueryEscape(title))

	resp, err := s.deps.HTTPClient.Get(ctx, sectionsURL)
	if err != nil {
		return "", cerrors.WrapError(err, "section list fetch failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return "", &cerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "section list returned non-200",
			API:        "wikipedia",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return "", cerrors.WrapError(err, "failed to read section list")
	}

	var result struct {
		Parse struct {
			Sections []struct {
				Line  string `json:"line"`
				Index string `json:"index"`
			} `json:"sections"`
		} `json:"parse"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", cerrors.WrapError(err, "failed to parse section list")
	}

	for _, sec := range result.Parse.Sections {
		heading := strings.ToLower(sec.Line)
		if strings.Contains(heading, "medicinal") || strings.Contains(heading, "traditional medicine") {
			return sec.Index, nil
		}
	}
	return "", nil
}

func (s *WikipediaService) fetchSectionHTML(ctx context.Context, title, sectionIndex string) (string, error) {
	textURL := fmt.Sprintf("%s?action=parse&page=%s&format=json&prop=text&section=%s",
		s.apiURL, url.QueryEscape(title), url.QueryEscape(sectionIndex))

	resp, err := s.deps.HTTPClient.Get(ctx, textURL)
	if err != nil {
		return "", cerrors.WrapError(err, "section text fetch failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return "", &cerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "section text returned non-200",
			API:        "wikipedia",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return "", cerrors.WrapError(err, "failed to read section text")
	}

	var result struct {
		Parse struct {
			Text map[string]string `json:"text"`
		} `json:"parse"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", cerrors.WrapError(err, "failed to parse section text")
	}
	return result.Parse.Text["*"], nil
}

// extractBullets runs the sentence pipeline over the section's paragraphs:
// strip reference markers, drop short paragraphs, split into sentences, keep
// sentences of at least minSentenceWords that are not efficacy disclaimers,
// translate when a non-English target is requested, suffix with a period.
func (s *WikipediaService) extractBullets(ctx context.Context, html, targetLang string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var bullets []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		paragraph := text.StripReferenceMarkers(strings.TrimSpace(p.Text()))
		if text.WordCount(paragraph) < minSentenceWords {
			return
		}
		for _, sent := range text.SplitSentences(paragraph) {
			sent = strings.Trim(strings.TrimSpace(sent), ".")
			if text.WordCount(sent) < minSentenceWords {
				continue
			}
			if strings.HasPrefix(strings.ToLower(sent), disclaimerPrefix) {
				continue
			}
			if targetLang != "" && targetLang != "en" && s.translator != nil {
				sent = s.translator.Translate(ctx, sent, targetLang)
			}
			bullets = append(bullets, sent+".")
		}
	})

	if len(bullets) > maxUseBullets {
		bullets = bullets[:maxUseBullets]
	}
	return bullets
}
