// ABOUTME: Taxonomy domain model holding an ordered rank-to-name lineage
// ABOUTME: Preserves insertion order (child before ancestor) through JSON round-trips

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RankEntry is a single level of a taxonomic lineage.
type RankEntry struct {
	// Rank is the classification level label (e.g., "Genus"), or a
	// positional fallback such as "Rank3" when no label resolved
	Rank string

	// ScientificName is the taxon name at this level
	ScientificName string
}

// Lineage is an ordered mapping from rank label to scientific name, built
// bottom-up as the resolver walks parent links. Setting an existing rank
// overwrites its value but keeps the original position.
type Lineage struct {
	entries []RankEntry
}

// Set inserts or overwrites the scientific name for a rank label.
func (l *Lineage) Set(rank, scientificName string) {
	for i := range l.entries {
		if l.entries[i].Rank == rank {
			l.entries[i].ScientificName = scientificName
			return
		}
	}
	l.entries = append(l.entries, RankEntry{Rank: rank, ScientificName: scientificName})
}

// Get returns the scientific name for a rank label.
func (l *Lineage) Get(rank string) (string, bool) {
	for _, e := range l.entries {
		if e.Rank == rank {
			return e.ScientificName, true
		}
	}
	return "", false
}

// Len returns the number of ranks recorded.
func (l *Lineage) Len() int {
	return len(l.entries)
}

// Entries returns the lineage in insertion order.
func (l *Lineage) Entries() []RankEntry {
	return l.entries
}

// MarshalJSON encodes the lineage as a JSON object whose key order matches
// traversal order.
func (l Lineage) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range l.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Rank)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.ScientificName)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving its key order.
func (l *Lineage) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("lineage: expected JSON object, got %v", tok)
	}

	l.entries = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("lineage: expected string key, got %v", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		l.entries = append(l.entries, RankEntry{Rank: key, ScientificName: value})
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
