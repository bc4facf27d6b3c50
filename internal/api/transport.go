package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "http://127.0.0.1:8000/v1"
	defaultUserAgent = "pantry/0.1"
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 8 << 20
)

// TransportOptions configure the HTTP layer.
type TransportOptions struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// RequestsPerSecond caps outgoing requests; zero disables the limiter.
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client
	Logger            zerolog.Logger
}

// Transport issues JSON requests against the API base address.
type Transport struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	log       zerolog.Logger
}

// NewTransport builds a Transport from opts.
func NewTransport(opts TransportOptions) (*Transport, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	client := opts.HTTPClient
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
		client.Timeout = defaultTimeout
	}
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return &Transport{
		baseURL:   base,
		http:      client,
		limiter:   limiter,
		userAgent: userAgent,
		log:       opts.Logger.With().Str("component", "transport").Logger(),
	}, nil
}

// BaseURL returns the normalized base address.
func (t *Transport) BaseURL() string {
	return t.baseURL.String()
}

// Do sends the request and returns the raw response body. A nil body sends
// no payload. Failures to get a response are returned as *TransportError and
// HTTP error statuses as *ApplicationError.
func (t *Transport) Do(ctx context.Context, method string, rel *url.URL, body any) ([]byte, error) {
	path := rel.Path
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.resolve(rel), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	t.log.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request")

	resp, err := t.http.Do(req)
	if err != nil {
		t.log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("read response: %w", err)}
	}

	t.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("response")

	if resp.StatusCode >= 400 {
		return nil, &ApplicationError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(payload),
			Body:       payload,
		}
	}
	return payload, nil
}

// resolve appends rel to the base path so a versioned prefix like /v1 is kept.
func (t *Transport) resolve(rel *url.URL) string {
	u := *t.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(rel.Path, "/")
	u.RawQuery = rel.RawQuery
	return u.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
