package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"spacearchive/internal/httputil"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 * 1024 * 1024

// TransportError reports a non-2xx upstream response.
type TransportError struct {
	Status     int
	StatusText string
	URL        string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("NASA API request failed: %d %s", e.Status, e.StatusText)
}

// DecodeError reports a response body that is not valid JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Transport issues GET requests against a base endpoint and returns raw JSON.
// It never retries.
type Transport struct {
	base   *url.URL
	client *http.Client
	log    *slog.Logger
}

// NewTransport creates a Transport rooted at baseURL. A nil client gets a
// hardened default; a nil logger uses slog.Default().
func NewTransport(baseURL string, client *http.Client, logger *slog.Logger) (*Transport, error) {
	if err := httputil.ValidateURL(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if client == nil {
		client = httputil.NewClient(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{base: base, client: client, log: logger}, nil
}

// URL resolves endpoint against the base and appends every non-empty param.
// endpoint may carry already-escaped path segments.
func (t *Transport) URL(endpoint string, params map[string]string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	u := t.base.ResolveReference(ref)

	q := u.Query()
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Get fetches endpoint with params and returns the undecoded JSON body.
func (t *Transport) Get(ctx context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	u, err := t.URL(endpoint, params)
	if err != nil {
		return nil, err
	}
	return t.fetch(ctx, u)
}

// fetch performs the GET for an already resolved URL.
func (t *Transport) fetch(ctx context.Context, u string) (json.RawMessage, error) {
	t.log.Debug("upstream request", slog.String("url", u))

	resp, err := httputil.Get(ctx, t.client, u, "application/json")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			URL:        u,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if !json.Valid(body) {
		return nil, &DecodeError{URL: u, Err: fmt.Errorf("body is not valid JSON")}
	}

	return json.RawMessage(body), nil
}

// getJSON fetches endpoint and decodes it into v.
func (t *Transport) getJSON(ctx context.Context, endpoint string, params map[string]string, v any) error {
	u, err := t.URL(endpoint, params)
	if err != nil {
		return err
	}
	body, err := t.fetch(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{URL: u, Err: err}
	}
	return nil
}
