package cache

import (
	"testing"
	"time"
)

func TestEntry_IsExpired(t *testing.T) {
	fresh := NewEntry([]byte(`{}`), time.Hour)
	if fresh.IsExpired() {
		t.Error("fresh entry reported expired")
	}

	stale := &Entry{
		Payload: []byte(`{}`),
		Expires: time.Now().Add(-time.Minute),
	}
	if !stale.IsExpired() {
		t.Error("stale entry reported fresh")
	}
}

func TestEntry_TTL(t *testing.T) {
	entry := NewEntry([]byte(`{}`), time.Hour)

	ttl := entry.TTL()
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want within (0, 1h]", ttl)
	}

	expired := &Entry{Expires: time.Now().Add(-time.Minute)}
	if expired.TTL() != 0 {
		t.Errorf("expired TTL = %v, want 0", expired.TTL())
	}
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "numeric identifier",
			key:  Key{BindKey: "id", Identifier: "1337"},
			want: "companyfetch:id:1337",
		},
		{
			name: "domain lookup",
			key:  Key{BindKey: "domain", Identifier: "acme.example"},
			want: "companyfetch:domain:acme.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
