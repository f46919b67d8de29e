// ABOUTME: Taxonomy resolution service walking the Wikidata claim graph
// ABOUTME: Finds a taxon root by bounded DFS and collects the parent-taxon lineage

package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
	"unicode"

	"plantverse-api/core/domain"
	cerrors "plantverse-api/core/errors"
	"plantverse-api/core/interfaces"
)

const (
	// maxRootSearchDepth bounds the instance-of/subclass-of descent that
	// locates the taxon root. The claim graph carries no cycle guarantees,
	// so the bound is what makes the search terminate.
	maxRootSearchDepth = 5

	// maxLineageDepth bounds the parent-taxon walk from the root upward.
	maxLineageDepth = 20

	lineageCacheTTL = 24 * time.Hour
)

// TaxonomyService resolves free-text labels to taxonomic lineages using the
// Wikidata entity API.
type TaxonomyService struct {
	deps    interfaces.Dependencies
	baseURL string
}

// NewTaxonomyService creates a new taxonomy service instance.
// baseURL is the Wikidata root (e.g., "https://www.wikidata.org").
func NewTaxonomyService(deps interfaces.Dependencies, baseURL string) *TaxonomyService {
	return &TaxonomyService{
		deps:    deps,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Resolve maps a label to an ordered rank-to-scientific-name lineage.
// It returns a NotFoundError when no entity matches the label or when no
// taxon root exists within the search bound.
func (s *TaxonomyService) Resolve(ctx context.Context, label string) (domain.Lineage, error) {
	var lineage domain.Lineage

	if label == "" {
		return lineage, &cerrors.ValidationError{Field: "label", Message: "label cannot be empty"}
	}

	cacheKey := "taxonomy:" + label
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			if err := json.Unmarshal(data, &lineage); err == nil {
				return lineage, nil
			}
		}
	}

	entityID, err := s.searchEntity(ctx, label)
	if err != nil {
		return lineage, err
	}
	if entityID == "" {
		return lineage, &cerrors.NotFoundError{Resource: "wikidata entity", ID: label}
	}

	res := &resolution{svc: s, memo: make(map[string]*entity)}

	rootID := res.findTaxonRoot(ctx, entityID, 0)
	if rootID == "" {
		return lineage, &cerrors.NotFoundError{Resource: "taxon root", ID: entityID}
	}

	res.collect(ctx, rootID, 0, &lineage)

	if s.deps.Logger != nil {
		s.deps.Logger.Debug("Resolved taxonomy", map[string]interface{}{
			"label":   label,
			"root":    rootID,
			"ranks":   lineage.Len(),
			"fetches": len(res.memo),
		})
	}

	if s.deps.Cache != nil && lineage.Len() > 0 {
		if data, err := json.Marshal(lineage); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, lineageCacheTTL)
		}
	}

	return lineage, nil
}

// searchEntity resolves a label to its best-matching entity id via the
// wbsearchentities endpoint. An empty id with nil error means no match.
func (s *TaxonomyService) searchEntity(ctx context.Context, label string) (string, error) {
	searchURL := fmt.Sprintf(
		"%s/w/api.php?action=wbsearchentities&search=%s&language=en&format=json",
		s.baseURL, url.QueryEscape(label),
	)

	resp, err := s.deps.HTTPClient.Get(ctx, searchURL)
	if err != nil {
		return "", cerrors.WrapError(err, "entity search failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return "", &cerrors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "entity search returned non-200",
			API:        "wikidata",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return "", cerrors.WrapError(err, "failed to read search response")
	}

	var result struct {
		Search []struct {
			ID string `json:"id"`
		} `json:"search"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", cerrors.WrapError(err, "failed to parse search response")
	}

	if len(result.Search) == 0 {
		return "", nil
	}
	return result.Search[0].ID, nil
}

// resolution holds the per-call entity memo. Repeated nodes reached through
// different claim paths cost a single network call, and the memo dies with
// the call so nothing leaks across requests.
type resolution struct {
	svc  *TaxonomyService
	memo map[string]*entity
}

// fetch returns the entity document for id, memoized. Any transport or
// decode failure memoizes an empty entity, which the traversal treats as a
// node with no taxonomy attributes.
func (r *resolution) fetch(ctx context.Context, id string) *entity {
	if ent, ok := r.memo[id]; ok {
		return ent
	}

	ent := r.fetchRemote(ctx, id)
	if ent == nil {
		ent = &entity{}
	}
	r.memo[id] = ent
	return ent
}

func (r *resolution) fetchRemote(ctx context.Context, id string) *entity {
	fetchURL := fmt.Sprintf("%s/wiki/Special:EntityData/%s.json", r.svc.baseURL, url.PathEscape(id))

	resp, err := r.svc.deps.HTTPClient.Get(ctx, fetchURL)
	if err != nil {
		r.logFetchFailure(id, err.Error())
		return nil
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		r.logFetchFailure(id, fmt.Sprintf("status %d", resp.StatusCode()))
		return nil
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		r.logFetchFailure(id, err.Error())
		return nil
	}

	var doc struct {
		Entities map[string]*entity `json:"entities"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		r.logFetchFailure(id, err.Error())
		return nil
	}

	return doc.Entities[id]
}

func (r *resolution) logFetchFailure(id, reason string) {
	if r.svc.deps.Logger != nil {
		r.svc.deps.Logger.Warn("Failed to fetch entity, treating as dead end", map[string]interface{}{
			"entity": id,
			"reason": reason,
		})
	}
}

// findTaxonRoot performs a pre-order, short-circuiting depth-first search
// over instance-of and subclass-of claims for the first entity that carries
// both a taxon name and a parent taxon. Returns "" when the bound is hit.
func (r *resolution) findTaxonRoot(ctx context.Context, id string, depth int) string {
	if depth > maxRootSearchDepth {
		return ""
	}

	ent := r.fetch(ctx, id)
	if ent.hasClaim(propTaxonName) && ent.hasClaim(propParentTaxon) {
		return id
	}

	for _, prop := range []string{propInstanceOf, propSubclassOf} {
		for _, childID := range ent.entityIDs(prop) {
			if found := r.findTaxonRoot(ctx, childID, depth+1); found != "" {
				return found
			}
		}
	}
	return ""
}

// collect walks the parent-taxon chain upward from id, recording
// rank -> scientific name at each level. A node with a taxon name but no
// resolvable rank label is keyed "Rank<level>". A node with no parent link
// ends the walk; the bound ends it regardless.
func (r *resolution) collect(ctx context.Context, id string, level int, lineage *domain.Lineage) {
	if level > maxLineageDepth {
		return
	}

	ent := r.fetch(ctx, id)

	sci := ent.firstString(propTaxonName)
	rank := ""
	if rankID := ent.firstEntityID(propTaxonRank); rankID != "" {
		rank = capitalizeRank(r.fetch(ctx, rankID).englishLabel())
	}

	if sci != "" {
		key := rank
		if key == "" {
			key = fmt.Sprintf("Rank%d", level)
		}
		lineage.Set(key, sci)
	}

	if parentID := ent.firstEntityID(propParentTaxon); parentID != "" {
		r.collect(ctx, parentID, level+1, lineage)
	}
}

// capitalizeRank uppercases the first rune and lowercases the rest, so
// "taxonomic Rank" labels render consistently as lineage keys.
func capitalizeRank(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
