// Package query builds the GraphQL query document from stored fragment
// definitions. The result is an opaque string; nothing downstream parses it.
package query

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Fragment is one stored GraphQL fragment: its definition plus the spread
// that pulls it into the company query.
type Fragment struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
	Spread     string `json:"query_string"`
}

// Fragments is the on-disk fragment store.
type Fragments struct {
	Fragments []Fragment `json:"fragments"`
}

// Load reads a fragment store from a JSON file.
func Load(path string) (Fragments, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fragments{}, fmt.Errorf("read fragments: %w", err)
	}

	var f Fragments
	if err := json.Unmarshal(data, &f); err != nil {
		return Fragments{}, fmt.Errorf("parse fragments: %w", err)
	}
	if len(f.Fragments) == 0 {
		return Fragments{}, fmt.Errorf("fragment store %s is empty", path)
	}
	return f, nil
}

// Build assembles the full query document: all fragment definitions followed
// by a company query that spreads each of them, parameterized on the bind
// variable name (id, duns, or domain).
func Build(f Fragments, bindKey string) string {
	definitions := make([]string, 0, len(f.Fragments))
	spreads := make([]string, 0, len(f.Fragments))
	for _, frag := range f.Fragments {
		definitions = append(definitions, frag.Definition)
		spreads = append(spreads, frag.Spread)
	}

	return fmt.Sprintf("%s query company ($%s: ID!) { company(%s: $%s) { %s } }",
		strings.Join(definitions, " "),
		bindKey, bindKey, bindKey,
		strings.Join(spreads, " "))
}
