package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"companyfetch/pkg/model"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:        "valid config",
			config:      DefaultConfig("https://api.example.com", "secret", "query company { }"),
			expectError: false,
		},
		{
			name: "missing base URL",
			config: Config{
				APIKey: "secret",
				Query:  "query company { }",
			},
			expectError: true,
		},
		{
			name: "missing API key",
			config: Config{
				BaseURL: "https://api.example.com",
				Query:   "query company { }",
			},
			expectError: true,
		},
		{
			name: "missing query",
			config: Config{
				BaseURL: "https://api.example.com",
				APIKey:  "secret",
			},
			expectError: true,
		},
		{
			name: "unsupported bind key",
			config: Config{
				BaseURL: "https://api.example.com",
				APIKey:  "secret",
				Query:   "query company { }",
				BindKey: BindKey("vat_number"),
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			if tt.expectError && err == nil {
				t.Error("New succeeded, want error")
			}
			if !tt.expectError && err != nil {
				t.Errorf("New failed: %v", err)
			}
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	e, err := New(Config{
		BaseURL: "https://api.example.com",
		APIKey:  "secret",
		Query:   "query company { }",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if e.config.BindKey != BindInternalID {
		t.Errorf("BindKey = %q, want %q", e.config.BindKey, BindInternalID)
	}
	if e.config.APIKeyHeader != "x-api-key" {
		t.Errorf("APIKeyHeader = %q, want x-api-key", e.config.APIKeyHeader)
	}
	if e.config.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", e.config.Timeout)
	}
}

func newTestExecutor(t *testing.T, serverURL string) *Executor {
	t.Helper()

	cfg := DefaultConfig(serverURL, "test-key", "query company ($id: ID!) { company(id: $id) { id displayName } }")
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func TestExecute_Success(t *testing.T) {
	var gotBody struct {
		Query     string                     `json:"query"`
		Variables map[string]json.RawMessage `json:"variables"`
	}
	var gotHeader http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("request body decode failed: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"company": {"id": 42, "displayName": "Acme Corp"}}}`))
	}))
	defer server.Close()

	e := newTestExecutor(t, server.URL)
	out := e.Execute(context.Background(), model.IDFromInt64(42))

	if !out.Success() {
		t.Fatalf("Execute failed: %v", out.Err)
	}
	if out.Record.DisplayName != "Acme Corp" {
		t.Errorf("DisplayName = %q, want Acme Corp", out.Record.DisplayName)
	}
	if gotHeader.Get("x-api-key") != "test-key" {
		t.Errorf("API key header = %q, want test-key", gotHeader.Get("x-api-key"))
	}
	if gotHeader.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotHeader.Get("Content-Type"))
	}
	if string(gotBody.Variables["id"]) != "42" {
		t.Errorf("bound variable = %s, want 42", gotBody.Variables["id"])
	}
}

func TestExecute_CustomBindKey(t *testing.T) {
	var gotVariables map[string]json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Variables map[string]json.RawMessage `json:"variables"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		gotVariables = body.Variables
		w.Write([]byte(`{"data": {"company": {"id": 1}}}`))
	}))
	defer server.Close()

	cfg := DefaultConfig(server.URL, "test-key", "query company ($duns: ID!) { company(duns: $duns) { id } }")
	cfg.BindKey = BindRegistryID
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	out := e.Execute(context.Background(), model.IDFromString("123456789"))
	if !out.Success() {
		t.Fatalf("Execute failed: %v", out.Err)
	}
	if string(gotVariables["duns"]) != "123456789" {
		t.Errorf("duns variable = %s, want 123456789", gotVariables["duns"])
	}
}

func TestExecute_HTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	e := newTestExecutor(t, server.URL)
	out := e.Execute(context.Background(), model.IDFromInt64(7))

	if out.Success() {
		t.Fatal("Execute succeeded, want HTTP status failure")
	}
	if out.Err.Kind != KindHTTPStatus {
		t.Errorf("Kind = %q, want %q", out.Err.Kind, KindHTTPStatus)
	}
	if out.Err.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", out.Err.StatusCode)
	}
	if id, _ := out.Err.ID.Int64(); id != 7 {
		t.Errorf("error ID = %v, want 7", out.Err.ID)
	}
}

func TestExecute_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // Connection refused from here on.

	e := newTestExecutor(t, serverURL)
	out := e.Execute(context.Background(), model.IDFromInt64(7))

	if out.Success() {
		t.Fatal("Execute succeeded, want transport failure")
	}
	if out.Err.Kind != KindTransport {
		t.Errorf("Kind = %q, want %q", out.Err.Kind, KindTransport)
	}
}

func TestExecute_DecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>gateway error</html>`},
		{name: "missing company", body: `{"data": {}}`},
		{name: "api error", body: `{"data": null, "error": "not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			e := newTestExecutor(t, server.URL)
			out := e.Execute(context.Background(), model.IDFromInt64(7))

			if out.Success() {
				t.Fatal("Execute succeeded, want decode failure")
			}
			if out.Err.Kind != KindDecode {
				t.Errorf("Kind = %q, want %q", out.Err.Kind, KindDecode)
			}
		})
	}
}

func TestExecute_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"data": {"company": {"id": 1}}}`))
	}))
	defer server.Close()

	cfg := DefaultConfig(server.URL, "test-key", "query company { }")
	cfg.Timeout = 20 * time.Millisecond
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	out := e.Execute(context.Background(), model.IDFromInt64(7))
	if out.Success() {
		t.Fatal("Execute succeeded, want timeout failure")
	}
	if out.Err.Kind != KindTransport {
		t.Errorf("Kind = %q, want %q for timeout", out.Err.Kind, KindTransport)
	}
}

func TestFetchError_Error(t *testing.T) {
	withStatus := &FetchError{
		ID:         model.IDFromInt64(42),
		Kind:       KindHTTPStatus,
		StatusCode: 503,
		Message:    "HTTP 503 Service Unavailable",
	}
	if got := withStatus.Error(); got != "fetch 42: http_status error (status 503): HTTP 503 Service Unavailable" {
		t.Errorf("Error() = %q", got)
	}

	withoutStatus := &FetchError{
		ID:      model.IDFromString("acme"),
		Kind:    KindTransport,
		Message: "connection refused",
	}
	if got := withoutStatus.Error(); got != "fetch acme: transport error: connection refused" {
		t.Errorf("Error() = %q", got)
	}
}

func TestOutcome_Tags(t *testing.T) {
	success := Outcome{ID: model.IDFromInt64(1), Record: &model.Company{}}
	if !success.Success() {
		t.Error("outcome with record should be a success")
	}

	failure := Failure(model.IDFromInt64(2), KindHTTPStatus, "HTTP 404", nil)
	if failure.Success() {
		t.Error("outcome with error should be a failure")
	}
	if failure.Err.Kind != KindHTTPStatus {
		t.Errorf("Kind = %q, want %q", failure.Err.Kind, KindHTTPStatus)
	}
}
