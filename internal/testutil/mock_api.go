// Package testutil provides testing utilities for the company profile client.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior of the mock API for one identifier.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockAPI is a configurable mock GraphQL endpoint for testing. It answers
// POST /v1/query, routing by the identifier bound in the request variables.
type MockAPI struct {
	server    *httptest.Server
	mu        sync.RWMutex
	responses map[string]MockResponse

	// Tracking
	RequestCount      int
	InFlight          int
	MaxInFlight       int
	LastRequestHeader http.Header
	LastQuery         string
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		responses: make(map[string]MockResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.InFlight++
		if mock.InFlight > mock.MaxInFlight {
			mock.MaxInFlight = mock.InFlight
		}
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		defer func() {
			mock.mu.Lock()
			mock.InFlight--
			mock.mu.Unlock()
		}()

		if r.Method != http.MethodPost || r.URL.Path != "/v1/query" {
			http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
			return
		}

		identifier, query := parseRequest(r)
		mock.mu.Lock()
		mock.LastQuery = query
		resp, exists := mock.responses[identifier]
		mock.mu.Unlock()

		if !exists {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": {"company": null}, "error": "company not found"}`))
			return
		}

		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.StatusCode != 0 && resp.StatusCode != http.StatusOK {
			w.WriteHeader(resp.StatusCode)
		}
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	}))

	return mock
}

// parseRequest extracts the bound identifier (whatever the bind key) and
// the query string from a GraphQL request body.
func parseRequest(r *http.Request) (string, string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", ""
	}

	var req struct {
		Query     string                     `json:"query"`
		Variables map[string]json.RawMessage `json:"variables"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return "", ""
	}

	for _, raw := range req.Variables {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, req.Query
		}
		// Numbers arrive unquoted.
		return string(raw), req.Query
	}
	return "", req.Query
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.MaxInFlight = 0
	m.LastRequestHeader = nil
	m.LastQuery = ""
}

// SetCompany configures a healthy company response for an identifier.
func (m *MockAPI) SetCompany(identifier, companyJSON string) {
	m.SetResponse(identifier, MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"data": {"company": ` + companyJSON + `}}`,
	})
}

// SetResponse configures the raw response for an identifier.
func (m *MockAPI) SetResponse(identifier string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[identifier] = resp
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetMaxInFlight returns the highest number of concurrently open requests.
func (m *MockAPI) GetMaxInFlight() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.MaxInFlight
}
