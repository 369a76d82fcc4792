package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"ministry/internal/adapters/http/perf"
)

// maxResponseBytes caps how much of a backend response is read.
const maxResponseBytes = 8 << 20

const (
	outcomeOK          = "ok"
	outcomeRemote      = "remote_error"
	outcomeTransport   = "transport_error"
	outcomeUnavailable = "unavailable"
	outcomeFailed      = "failed"
)

// Options configures a Client.
type Options struct {
	GraphQLURL string
	BaseURL    string
	Timeout    time.Duration
	SlowMs     int
	HTTPClient *http.Client
	Collector  *perf.Collector
	Metrics    *Metrics
}

// Client talks to the youth-group backend over GraphQL and REST.
type Client struct {
	graphqlURL string
	baseURL    string
	http       *http.Client
	collector  *perf.Collector
	metrics    *Metrics
	slowMs     float64
}

// NewClient builds a Client from opts.
// PRE: GraphQLURL and BaseURL are absolute URLs
// POST: Returns a client whose requests time out after opts.Timeout
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	slow := opts.SlowMs
	if slow <= 0 {
		slow = 500
	}
	return &Client{
		graphqlURL: opts.GraphQLURL,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		http:       hc,
		collector:  opts.Collector,
		metrics:    opts.Metrics,
		slowMs:     float64(slow),
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// Request sends a GraphQL document and decodes the data object into out.
// PRE: query is a non-empty GraphQL document; out is a pointer or nil
// POST: Returns *RemoteError carrying the first reported error message,
// *TransportError for network or decoding failures, nil otherwise
func (c *Client) Request(ctx context.Context, query string, variables map[string]any, out any) error {
	op := operationName(query)
	start := time.Now()
	err := c.request(ctx, op, query, variables, out)
	c.observe("graphql", op, start, outcomeOf(err))
	return err
}

func (c *Client) request(ctx context.Context, op, query string, variables map[string]any, out any) error {
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	var env graphqlResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return &TransportError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if len(env.Errors) > 0 {
		return &RemoteError{Op: op, Message: env.Errors[0].Message}
	}
	if resp.StatusCode >= 300 {
		return &TransportError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &TransportError{Op: op, Err: errors.New("response has no data")}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// FetchJSON performs a best-effort GET against the REST API.
// PRE: path starts with "/"
// POST: Returns the raw JSON body, or nil on any network error, non-2xx status
// or invalid JSON. It never returns an error.
func (c *Client) FetchJSON(ctx context.Context, path string) json.RawMessage {
	start := time.Now()
	raw, err := c.fetch(ctx, path)
	if err != nil {
		slog.Warn("backend_fetch_failed", "path", path, "error", err.Error())
		c.observe("rest", path, start, outcomeUnavailable)
		return nil
	}
	c.observe("rest", path, start, outcomeOK)
	return raw
}

func (c *Client) fetch(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, errors.New("response is not JSON")
	}
	return raw, nil
}

// PostJSON sends body as JSON to a REST path and decodes the reply into out.
// PRE: path starts with "/"; out is a pointer or nil
// POST: Non-2xx replies become *RemoteError with the server's detail when present
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	start := time.Now()
	err := c.postJSON(ctx, path, body, out)
	c.observe("rest", "POST "+path, start, outcomeOf(err))
	return err
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	op := "POST " + path
	payload, err := json.Marshal(body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &detail) == nil && detail.Detail != "" {
			return &RemoteError{Op: op, Message: detail.Detail}
		}
		return &TransportError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) observe(transport, op string, start time.Time, outcome string) {
	elapsed := time.Since(start)
	durationMs := float64(elapsed.Microseconds()) / 1000.0

	if durationMs >= c.slowMs {
		slog.Warn("slow_backend_call", "transport", transport, "op", op, "outcome", outcome, "duration_ms", durationMs)
	} else {
		slog.Debug("backend_call", "transport", transport, "op", op, "outcome", outcome, "duration_ms", durationMs)
	}

	c.metrics.observe(transport, op, outcome, elapsed.Seconds())

	if c.collector != nil {
		c.collector.Record(perf.Entry{
			Kind:       perf.KindBackend,
			Path:       transport + " " + op,
			Failed:     outcome != outcomeOK,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case IsRemote(err):
		return outcomeRemote
	case IsTransport(err):
		return outcomeTransport
	default:
		return outcomeFailed
	}
}

var operationPattern = regexp.MustCompile(`^\s*(?:query|mutation)\s+([A-Za-z_][A-Za-z0-9_]*)`)

// operationName extracts the operation name from a GraphQL document.
func operationName(query string) string {
	if m := operationPattern.FindStringSubmatch(query); m != nil {
		return m[1]
	}
	return "anonymous"
}
