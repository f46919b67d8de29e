// ABOUTME: Wikidata entity JSON model and claim accessors
// ABOUTME: Extracts taxon name strings and entity pointers from claim sets

package taxonomy

import "encoding/json"

// Wikidata property identifiers used by the resolver.
const (
	propTaxonName   = "P225"
	propParentTaxon = "P171"
	propTaxonRank   = "P105"
	propInstanceOf  = "P31"
	propSubclassOf  = "P279"
)

// entity is the slice of a Wikidata EntityData document the resolver needs.
// A zero entity (no claims, no labels) stands in for any fetch failure and is
// treated as a dead end by the traversal.
type entity struct {
	Claims map[string][]claim     `json:"claims"`
	Labels map[string]entityLabel `json:"labels"`
}

type claim struct {
	Mainsnak struct {
		Datavalue struct {
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

type entityLabel struct {
	Value string `json:"value"`
}

// entityValue is the datavalue shape of properties that point at other
// entities (parent taxon, rank, instance of, subclass of).
type entityValue struct {
	ID string `json:"id"`
}

// hasClaim reports whether the entity carries at least one claim for prop.
func (e *entity) hasClaim(prop string) bool {
	return len(e.Claims[prop]) > 0
}

// firstString returns the first claim value of prop as a plain string,
// or "" when the claim is absent or not string-valued.
func (e *entity) firstString(prop string) string {
	claims := e.Claims[prop]
	if len(claims) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(claims[0].Mainsnak.Datavalue.Value, &s); err != nil {
		return ""
	}
	return s
}

// firstEntityID returns the entity id the first claim of prop points at,
// or "" when the claim is absent or malformed.
func (e *entity) firstEntityID(prop string) string {
	claims := e.Claims[prop]
	if len(claims) == 0 {
		return ""
	}
	var v entityValue
	if err := json.Unmarshal(claims[0].Mainsnak.Datavalue.Value, &v); err != nil {
		return ""
	}
	return v.ID
}

// entityIDs returns the entity ids of every claim of prop, in claim order.
func (e *entity) entityIDs(prop string) []string {
	claims := e.Claims[prop]
	if len(claims) == 0 {
		return nil
	}
	ids := make([]string, 0, len(claims))
	for _, c := range claims {
		var v entityValue
		if err := json.Unmarshal(c.Mainsnak.Datavalue.Value, &v); err != nil || v.ID == "" {
			continue
		}
		ids = append(ids, v.ID)
	}
	return ids
}

// englishLabel returns the entity's English label, or "".
func (e *entity) englishLabel() string {
	return e.Labels["en"].Value
}
