package cache

import "strings"

// Key identifies a cached payload. The same identifier fetched under a
// different bind key is a different lookup and caches separately.
type Key struct {
	// BindKey is the variable the identifier was bound to (id, duns, domain).
	BindKey string

	// Identifier is the canonical textual form of the company identifier.
	Identifier string
}

// String generates a deterministic cache key string.
// Format: companyfetch:<bind_key>:<identifier>
func (k Key) String() string {
	return strings.Join([]string{"companyfetch", k.BindKey, k.Identifier}, ":")
}
