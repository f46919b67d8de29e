package taxonomy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"plantverse-api/core/domain"
	cerrors "plantverse-api/core/errors"
	"plantverse-api/core/interfaces"
)

const testBaseURL = "https://www.wikidata.org"

// claim builders for synthetic entity graphs

func strClaim(value string) string {
	return fmt.Sprintf(`{"mainsnak":{"datavalue":{"value":%q}}}`, value)
}

func entClaim(id string) string {
	return fmt.Sprintf(`{"mainsnak":{"datavalue":{"value":{"entity-type":"item","id":%q}}}}`, id)
}

func entityJSON(id string, claims map[string][]string, enLabel string) string {
	parts := make([]string, 0, len(claims))
	for prop, cs := range claims {
		parts = append(parts, fmt.Sprintf("%q:[%s]", prop, strings.Join(cs, ",")))
	}
	labels := ""
	if enLabel != "" {
		labels = fmt.Sprintf(`,"labels":{"en":{"language":"en","value":%q}}`, enLabel)
	}
	return fmt.Sprintf(`{"entities":{%q:{"claims":{%s}%s}}}`, id, strings.Join(parts, ","), labels)
}

// graphClient serves a synthetic entity graph plus a search response and
// counts entity fetches per id.
type graphClient struct {
	searchBody string
	entities   map[string]string
	fetches    map[string]int
}

func newGraphClient(searchIDs []string, entities map[string]string) *graphClient {
	hits := make([]string, 0, len(searchIDs))
	for _, id := range searchIDs {
		hits = append(hits, fmt.Sprintf(`{"id":%q}`, id))
	}
	return &graphClient{
		searchBody: fmt.Sprintf(`{"search":[%s]}`, strings.Join(hits, ",")),
		entities:   entities,
		fetches:    make(map[string]int),
	}
}

func (g *graphClient) httpClient() *mockHTTPClient {
	return &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			if strings.Contains(url, "wbsearchentities") {
				return &mockResponse{statusCode: 200, body: g.searchBody}, nil
			}
			for id, body := range g.entities {
				if strings.Contains(url, "/wiki/Special:EntityData/"+id+".json") {
					g.fetches[id]++
					return &mockResponse{statusCode: 200, body: body}, nil
				}
			}
			return &mockResponse{statusCode: 404, body: "{}"}, nil
		},
	}
}

func newService(client interfaces.HTTPClient) *TaxonomyService {
	return NewTaxonomyService(interfaces.Dependencies{HTTPClient: client}, testBaseURL)
}

func TestResolve_EmptyLabel(t *testing.T) {
	service := newService(&mockHTTPClient{})

	_, err := service.Resolve(context.Background(), "")

	if !cerrors.IsValidation(err) {
		t.Errorf("Resolve(\"\") error = %v, want ValidationError", err)
	}
}

func TestResolve_NoEntityMatch(t *testing.T) {
	client := newGraphClient(nil, nil)
	service := newService(client.httpClient())

	_, err := service.Resolve(context.Background(), "Nonexistentus plantus")

	var notFound *cerrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve error = %v, want NotFoundError", err)
	}
	if notFound.ID != "Nonexistentus plantus" {
		t.Errorf("NotFoundError.ID = %q, want the original label", notFound.ID)
	}
}

func TestResolve_SearchTransportFailure(t *testing.T) {
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			return nil, errors.New("connection refused")
		},
	}
	service := newService(client)

	_, err := service.Resolve(context.Background(), "Neem")

	if err == nil {
		t.Error("Resolve should return an error when the search call fails")
	}
	if cerrors.IsNotFound(err) {
		t.Error("transport failure should not masquerade as not-found")
	}
}

// A graph whose only edges are self-referential instance-of links must
// terminate at the depth bound with a "no taxon root" result, not loop.
func TestResolve_SelfReferentialGraphHitsBound(t *testing.T) {
	entities := map[string]string{
		"Q1": entityJSON("Q1", map[string][]string{
			propInstanceOf: {entClaim("Q1")},
		}, ""),
	}
	client := newGraphClient([]string{"Q1"}, entities)
	service := newService(client.httpClient())

	_, err := service.Resolve(context.Background(), "Ouroboros")

	var notFound *cerrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve error = %v, want NotFoundError", err)
	}
	if notFound.Resource != "taxon root" {
		t.Errorf("NotFoundError.Resource = %q, want taxon root", notFound.Resource)
	}
	if notFound.ID != "Q1" {
		t.Errorf("NotFoundError.ID = %q, want the entity id Q1", notFound.ID)
	}
}

func TestResolve_FullLineage(t *testing.T) {
	entities := map[string]string{
		// Search hit: not itself a taxon, instance-of points at the root
		"Q1": entityJSON("Q1", map[string][]string{
			propInstanceOf: {entClaim("Q2")},
		}, ""),
		// Taxon root: species level
		"Q2": entityJSON("Q2", map[string][]string{
			propTaxonName:   {strClaim("Azadirachta indica")},
			propTaxonRank:   {entClaim("QR1")},
			propParentTaxon: {entClaim("Q3")},
		}, ""),
		"Q3": entityJSON("Q3", map[string][]string{
			propTaxonName:   {strClaim("Azadirachta")},
			propTaxonRank:   {entClaim("QR2")},
			propParentTaxon: {entClaim("Q4")},
		}, ""),
		// Topmost ancestor: has a name but no rank and no parent
		"Q4": entityJSON("Q4", map[string][]string{
			propTaxonName: {strClaim("Meliaceae")},
		}, ""),
		"QR1": entityJSON("QR1", nil, "species"),
		"QR2": entityJSON("QR2", nil, "genus"),
	}
	client := newGraphClient([]string{"Q1"}, entities)
	service := newService(client.httpClient())

	lineage, err := service.Resolve(context.Background(), "Neem")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	want := []domain.RankEntry{
		{Rank: "Species", ScientificName: "Azadirachta indica"},
		{Rank: "Genus", ScientificName: "Azadirachta"},
		{Rank: "Rank2", ScientificName: "Meliaceae"},
	}

	entries := lineage.Entries()
	if len(entries) != len(want) {
		t.Fatalf("lineage has %d entries, want %d: %+v", len(entries), len(want), entries)
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], w)
		}
	}
}

// Two ancestors resolving the same rank label: the later value wins in
// place. This matches the resolver's long-standing behavior and is asserted
// here so a change shows up as a test failure, not a silent difference.
func TestResolve_DuplicateRankOverwrites(t *testing.T) {
	entities := map[string]string{
		"Q2": entityJSON("Q2", map[string][]string{
			propTaxonName:   {strClaim("Rosa canina")},
			propTaxonRank:   {entClaim("QR1")},
			propParentTaxon: {entClaim("Q3")},
		}, ""),
		"Q3": entityJSON("Q3", map[string][]string{
			propTaxonName:   {strClaim("Rosids")},
			propTaxonRank:   {entClaim("QRC")},
			propParentTaxon: {entClaim("Q4")},
		}, ""),
		"Q4": entityJSON("Q4", map[string][]string{
			propTaxonName: {strClaim("Eudicots")},
			propTaxonRank: {entClaim("QRC")},
		}, ""),
		"QR1": entityJSON("QR1", nil, "species"),
		"QRC": entityJSON("QRC", nil, "clade"),
	}
	client := newGraphClient([]string{"Q2"}, entities)
	service := newService(client.httpClient())

	lineage, err := service.Resolve(context.Background(), "Dog rose")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if lineage.Len() != 2 {
		t.Fatalf("lineage has %d entries, want 2: %+v", lineage.Len(), lineage.Entries())
	}

	name, _ := lineage.Get("Clade")
	if name != "Eudicots" {
		t.Errorf("Get(Clade) = %q, want the later ancestor Eudicots", name)
	}
	if lineage.Entries()[1].Rank != "Clade" {
		t.Errorf("Clade entry moved; order = %+v", lineage.Entries())
	}
}

// A parent that fails to fetch is a dead end: the walk stops with what it
// has instead of erroring out.
func TestResolve_FetchFailureEndsWalkGracefully(t *testing.T) {
	entities := map[string]string{
		"Q2": entityJSON("Q2", map[string][]string{
			propTaxonName:   {strClaim("Quercus robur")},
			propTaxonRank:   {entClaim("QR1")},
			propParentTaxon: {entClaim("Q404")}, // not in the graph: fetch 404s
		}, ""),
		"QR1": entityJSON("QR1", nil, "species"),
	}
	client := newGraphClient([]string{"Q2"}, entities)
	service := newService(client.httpClient())

	lineage, err := service.Resolve(context.Background(), "Oak")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if lineage.Len() != 1 {
		t.Fatalf("lineage has %d entries, want 1", lineage.Len())
	}
	if name, _ := lineage.Get("Species"); name != "Quercus robur" {
		t.Errorf("Get(Species) = %q, want Quercus robur", name)
	}
}

// A rank entity shared by several lineage levels must cost one fetch.
func TestResolve_EntityFetchesAreMemoized(t *testing.T) {
	entities := map[string]string{
		"Q2": entityJSON("Q2", map[string][]string{
			propTaxonName:   {strClaim("Mentha spicata")},
			propTaxonRank:   {entClaim("QRC")},
			propParentTaxon: {entClaim("Q3")},
		}, ""),
		"Q3": entityJSON("Q3", map[string][]string{
			propTaxonName: {strClaim("Mentha")},
			propTaxonRank: {entClaim("QRC")},
		}, ""),
		"QRC": entityJSON("QRC", nil, "clade"),
	}
	client := newGraphClient([]string{"Q2"}, entities)
	service := newService(client.httpClient())

	if _, err := service.Resolve(context.Background(), "Mint"); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if client.fetches["QRC"] != 1 {
		t.Errorf("rank entity fetched %d times, want 1", client.fetches["QRC"])
	}
	if client.fetches["Q2"] != 1 {
		t.Errorf("root entity fetched %d times, want 1", client.fetches["Q2"])
	}
}

func TestResolve_ChecksCacheFirst(t *testing.T) {
	var cached domain.Lineage
	cached.Set("Species", "Azadirachta indica")
	data, _ := json.Marshal(cached)

	httpCalled := false
	client := &mockHTTPClient{
		getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
			httpCalled = true
			return nil, errors.New("should not be called")
		},
	}
	cache := &mockCache{
		getFunc: func(ctx context.Context, key string) ([]byte, error) {
			if key != "taxonomy:Neem" {
				t.Errorf("cache key = %q, want taxonomy:Neem", key)
			}
			return data, nil
		},
	}

	service := NewTaxonomyService(interfaces.Dependencies{HTTPClient: client, Cache: cache}, testBaseURL)

	lineage, err := service.Resolve(context.Background(), "Neem")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if httpCalled {
		t.Error("Resolve hit the network despite a cache hit")
	}
	if name, _ := lineage.Get("Species"); name != "Azadirachta indica" {
		t.Errorf("cached lineage lost data: %+v", lineage.Entries())
	}
}

func TestCapitalizeRank(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"species", "Species"},
		{"GENUS", "Genus"},
		{"taxonomic clade", "Taxonomic clade"},
	}

	for _, tc := range testCases {
		if got := capitalizeRank(tc.in); got != tc.want {
			t.Errorf("capitalizeRank(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
