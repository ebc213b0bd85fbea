// Package catalog loads the local food table used for nutrition lookups.
//
// The source is a JSON object mapping lowercase food names to per-serving
// facts: {"idli": {"calories": 39, "protein_g": 2.0}, ...}. Iteration order
// matters for reproducible output, so entries are kept in source order
// rather than in a Go map.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
)

// Catalog is an immutable, ordered food table. Safe for concurrent reads.
type Catalog struct {
	entries []model.FoodEntry
	index   map[string]int
}

// foodFacts mirrors one source entry. Pointer fields distinguish a missing
// field from an explicit zero.
type foodFacts struct {
	Calories *float64 `json:"calories"`
	ProteinG *float64 `json:"protein_g"`
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog from r, preserving the source's key order.
// Duplicate names keep their first position and take the last value.
func Parse(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("catalog root must be a JSON object, got %v", tok)
	}

	c := &Catalog{index: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read catalog key: %w", err)
		}
		name := strings.ToLower(strings.TrimSpace(tok.(string)))
		if name == "" {
			return nil, fmt.Errorf("catalog entry has empty name")
		}

		var facts foodFacts
		if err := dec.Decode(&facts); err != nil {
			return nil, fmt.Errorf("entry %q: %w", name, err)
		}
		if facts.Calories == nil || facts.ProteinG == nil {
			return nil, fmt.Errorf("entry %q: calories and protein_g are required", name)
		}
		if *facts.Calories < 0 || *facts.ProteinG < 0 {
			return nil, fmt.Errorf("entry %q: calories and protein_g must be non-negative", name)
		}

		entry := model.FoodEntry{Name: name, Calories: *facts.Calories, ProteinG: *facts.ProteinG}
		if i, ok := c.index[name]; ok {
			c.entries[i] = entry
			continue
		}
		c.index[name] = len(c.entries)
		c.entries = append(c.entries, entry)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read catalog end: %w", err)
	}
	return c, nil
}

// LookupContains returns every entry whose name appears as a contiguous
// substring of text (case-insensitive), in catalog order. No word-boundary
// check is applied: "egg" matches inside "eggplant".
func (c *Catalog) LookupContains(text string) []model.FoodEntry {
	textLower := strings.ToLower(text)
	var matched []model.FoodEntry
	for _, e := range c.entries {
		if strings.Contains(textLower, e.Name) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Get returns the entry for an exact (lowercase) name.
func (c *Catalog) Get(name string) (model.FoodEntry, bool) {
	i, ok := c.index[strings.ToLower(name)]
	if !ok {
		return model.FoodEntry{}, false
	}
	return c.entries[i], true
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []model.FoodEntry {
	out := make([]model.FoodEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Encode writes entries to w as a catalog JSON object, one entry per line,
// preserving slice order.
func Encode(w io.Writer, entries []model.FoodEntry) error {
	if _, err := io.WriteString(w, "{\n"); err != nil {
		return err
	}
	for i, e := range entries {
		name, err := json.Marshal(strings.ToLower(e.Name))
		if err != nil {
			return err
		}
		facts, err := json.Marshal(struct {
			Calories float64 `json:"calories"`
			ProteinG float64 `json:"protein_g"`
		}{e.Calories, e.ProteinG})
		if err != nil {
			return err
		}
		sep := ",\n"
		if i == len(entries)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "  %s: %s%s", name, facts, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
