package cache

import "time"

// Entry is a cached raw profile payload.
type Entry struct {
	// Payload is the raw response body as returned by the API.
	Payload []byte `json:"payload"`

	// Expires is when the entry becomes stale.
	Expires time.Time `json:"expires"`

	// CachedAt is when the payload was stored.
	CachedAt time.Time `json:"cached_at"`
}

// IsExpired returns true if the entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration. Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// NewEntry creates an entry that expires ttl from now.
func NewEntry(payload []byte, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Payload:  payload,
		Expires:  now.Add(ttl),
		CachedAt: now,
	}
}
