// Package client provides the GraphQL request executor: one HTTP POST per
// identifier, with error classification and metrics. The executor never
// lets a fault cross its boundary; every call returns an Outcome value.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"companyfetch/pkg/decode"
	"companyfetch/pkg/model"
)

// queryPath is the fixed relative path every profile query is posted to.
const queryPath = "/v1/query"

// Prometheus metrics for fetch operations.
var (
	fetchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "companyfetch_requests_total",
		Help: "Total profile fetch requests by status",
	}, []string{"status"})

	fetchRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "companyfetch_request_duration_seconds",
		Help:    "Profile fetch request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	fetchErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "companyfetch_errors_total",
		Help: "Total fetch errors by kind",
	}, []string{"kind"})
)

// BindKey names the GraphQL variable the identifier is bound to. Closed set:
// the API accepts lookups by internal id, registry number, or domain name.
type BindKey string

const (
	// BindInternalID binds the identifier to the API's internal company id.
	BindInternalID BindKey = "id"

	// BindRegistryID binds the identifier to the external registry number.
	BindRegistryID BindKey = "duns"

	// BindDomain binds the identifier to the company domain name.
	BindDomain BindKey = "domain"
)

func validBindKey(k BindKey) bool {
	switch k {
	case BindInternalID, BindRegistryID, BindDomain:
		return true
	default:
		return false
	}
}

// Config holds the executor configuration. All fields are read-only after
// New; the executor holds no mutable per-call state, so a single instance
// is safe for any number of concurrent Execute calls.
type Config struct {
	// BaseURL of the GraphQL API, without the query path.
	BaseURL string

	// APIKey sent on every request.
	APIKey string

	// APIKeyHeader is the header name the key is sent under.
	APIKeyHeader string

	// Query is the full GraphQL query document (built elsewhere; opaque here).
	Query string

	// BindKey is the variable name the identifier is bound to.
	BindKey BindKey

	// Timeout per call. This is the only per-item cancellation mechanism.
	Timeout time.Duration
}

// DefaultConfig returns a config with the standard header, bind key, and
// timeout filled in.
func DefaultConfig(baseURL, apiKey, query string) Config {
	return Config{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		APIKeyHeader: "x-api-key",
		Query:        query,
		BindKey:      BindInternalID,
		Timeout:      60 * time.Second,
	}
}

// Fetcher fetches the profile for one identifier. Implemented by Executor
// and by the caching wrapper in pkg/cache.
type Fetcher interface {
	Execute(ctx context.Context, id model.ID) Outcome
}

// Executor issues one request per identifier against the GraphQL endpoint.
type Executor struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates an executor. The HTTP client is shared across all concurrent
// calls within a run.
func New(cfg Config) (*Executor, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	if cfg.Query == "" {
		return nil, fmt.Errorf("query document is required")
	}

	if cfg.APIKeyHeader == "" {
		cfg.APIKeyHeader = "x-api-key"
	}

	if cfg.BindKey == "" {
		cfg.BindKey = BindInternalID
	}
	if !validBindKey(cfg.BindKey) {
		return nil, fmt.Errorf("unsupported bind key %q", cfg.BindKey)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	logger := log.With().Str("component", "fetch-executor").Logger()

	return &Executor{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// requestBody is the wire shape of one query call.
type requestBody struct {
	Query     string               `json:"query"`
	Variables map[BindKey]model.ID `json:"variables"`
}

// Execute performs exactly one network call for one identifier. No retry,
// no caching. Any failure (transport, status, decode, or a recovered panic)
// becomes a Failure outcome; Execute never returns an error and never
// panics across its boundary.
func (e *Executor) Execute(ctx context.Context, id model.ID) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("id", id.String()).
				Interface("panic", r).
				Msg("Recovered panic during fetch")
			fetchErrorsTotal.WithLabelValues(string(KindUnexpected)).Inc()
			out = Failure(id, KindUnexpected, fmt.Sprintf("panic: %v", r), nil)
		}
	}()

	startTime := time.Now()
	defer func() {
		fetchRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	raw, fetchErr := e.FetchRaw(ctx, id)
	if fetchErr != nil {
		return Outcome{ID: id, Err: fetchErr}
	}

	record, err := decode.Decode(raw)
	if err != nil {
		e.logger.Warn().
			Str("id", id.String()).
			Err(err).
			Msg("Response decode failed")
		fetchErrorsTotal.WithLabelValues(string(KindDecode)).Inc()
		return Failure(id, KindDecode, err.Error(), err)
	}

	return Outcome{ID: id, Record: record}
}

// FetchRaw performs the network call and returns the raw response body
// without decoding it. The caching wrapper uses this to store payloads.
func (e *Executor) FetchRaw(ctx context.Context, id model.ID) ([]byte, *FetchError) {
	body, err := json.Marshal(requestBody{
		Query:     e.config.Query,
		Variables: map[BindKey]model.ID{e.config.BindKey: id},
	})
	if err != nil {
		fetchErrorsTotal.WithLabelValues(string(KindUnexpected)).Inc()
		return nil, &FetchError{ID: id, Kind: KindUnexpected, Message: "marshal request body", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.config.BaseURL+queryPath, bytes.NewReader(body))
	if err != nil {
		fetchErrorsTotal.WithLabelValues(string(KindUnexpected)).Inc()
		return nil, &FetchError{ID: id, Kind: KindUnexpected, Message: "create request", Err: err}
	}
	req.Header.Set(e.config.APIKeyHeader, e.config.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	e.logger.Debug().
		Str("id", id.String()).
		Str("bind_key", string(e.config.BindKey)).
		Msg("Executing profile fetch")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.logger.Warn().
			Str("id", id.String()).
			Err(err).
			Msg("HTTP request failed")
		fetchErrorsTotal.WithLabelValues(string(KindTransport)).Inc()
		fetchRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, &FetchError{ID: id, Kind: KindTransport, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	fetchRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e.logger.Warn().
			Str("id", id.String()).
			Int("status", resp.StatusCode).
			Msg("Non-2xx response")
		fetchErrorsTotal.WithLabelValues(string(KindHTTPStatus)).Inc()
		return nil, &FetchError{
			ID:         id,
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %s", resp.Status),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		fetchErrorsTotal.WithLabelValues(string(KindTransport)).Inc()
		return nil, &FetchError{ID: id, Kind: KindTransport, Message: "read response body", Err: err}
	}

	return raw, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (e *Executor) SetHTTPClient(client *http.Client) {
	e.httpClient = client
}
