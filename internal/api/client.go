package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/pantry/internal/reach"
)

// Service is the surface views consume. It is implemented by *Client and
// can be faked in tests.
type Service interface {
	IsOffline() bool
	SetOffline(offline bool)
	Reachability() reach.Snapshot

	Health(ctx context.Context) Result[Health]
	SystemInfo(ctx context.Context) Result[SystemInfo]
	DatabaseTables(ctx context.Context) Result[[]Table]
	ResourceUsage(ctx context.Context) Result[Resources]
	APIEndpoints(ctx context.Context) Result[[]Endpoint]
	RecentActivities(ctx context.Context, req ListRequest) Result[Page[Activity]]

	Recipes(ctx context.Context, req ListRequest) Result[Page[Recipe]]
	Recipe(ctx context.Context, id int64) Result[Recipe]
	CreateRecipe(ctx context.Context, in RecipeInput) (WriteResult, error)
	UpdateRecipe(ctx context.Context, id int64, patch RecipePatch) (WriteResult, error)
	DeleteRecipe(ctx context.Context, id int64) (WriteResult, error)

	Ingredients(ctx context.Context, q IngredientQuery) Result[Page[Ingredient]]
	Ingredient(ctx context.Context, id int64) Result[Ingredient]
	CreateIngredient(ctx context.Context, in IngredientInput) (WriteResult, error)
	UpdateIngredient(ctx context.Context, id int64, patch IngredientPatch) (WriteResult, error)
	DeleteIngredient(ctx context.Context, id int64) (WriteResult, error)
}

var _ Service = (*Client)(nil)

const defaultCatalogPrefix = "/fridge2fork/v1"

// Options configure a Client.
type Options struct {
	BaseURL string
	// CatalogPrefix is prepended to recipe and ingredient routes.
	CatalogPrefix     string
	Timeout           time.Duration
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client
	// Gate is shared across clients of the same backend. A private gate is
	// created when nil.
	Gate   *reach.Gate
	Logger zerolog.Logger
}

// Client performs gate-aware operations against the admin API.
type Client struct {
	transport     *Transport
	gate          *reach.Gate
	catalogPrefix string
	log           zerolog.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	transport, err := NewTransport(TransportOptions{
		BaseURL:           opts.BaseURL,
		Timeout:           opts.Timeout,
		UserAgent:         opts.UserAgent,
		RequestsPerSecond: opts.RequestsPerSecond,
		Burst:             opts.Burst,
		HTTPClient:        opts.HTTPClient,
		Logger:            opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	gate := opts.Gate
	if gate == nil {
		gate = reach.NewGate(reach.Options{Logger: opts.Logger})
	}
	prefix := strings.TrimSpace(opts.CatalogPrefix)
	if prefix == "" {
		prefix = defaultCatalogPrefix
	}
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = ""
	}
	return &Client{
		transport:     transport,
		gate:          gate,
		catalogPrefix: prefix,
		log:           opts.Logger.With().Str("component", "api").Logger(),
	}, nil
}

// BaseURL returns the normalized API base address.
func (c *Client) BaseURL() string { return c.transport.BaseURL() }

// Gate returns the reachability gate shared by this client.
func (c *Client) Gate() *reach.Gate { return c.gate }

// IsOffline reports whether calls are currently short-circuited.
func (c *Client) IsOffline() bool { return c.gate.IsOffline() }

// SetOffline forces offline mode on or off.
func (c *Client) SetOffline(offline bool) { c.gate.SetOffline(offline) }

// Reachability returns the gate state for display.
func (c *Client) Reachability() reach.Snapshot { return c.gate.Snapshot() }

func (c *Client) catalogPath(resource string, id int64) *url.URL {
	path := c.catalogPrefix + "/" + resource + "/"
	if id > 0 {
		path += formatID(id)
	}
	return &url.URL{Path: path}
}

// read runs one gated GET. It never returns a Go error: gate denials and
// transport failures yield Fallback, everything else Failure.
func read[T any](ctx context.Context, c *Client, rel *url.URL, fallback func() T, decode func([]byte) (T, error)) Result[T] {
	if c.gate.Check() == reach.Deny {
		return Result[T]{Outcome: Fallback, Value: fallback()}
	}
	raw, err := c.transport.Do(ctx, http.MethodGet, rel, nil)
	if err != nil {
		class := c.gate.RecordFailure(err)
		if class == reach.ClassTransport {
			c.log.Debug().Err(err).Str("path", rel.Path).Msg("read fell back")
			return Result[T]{Outcome: Fallback, Value: fallback(), Err: err}
		}
		c.log.Warn().Err(err).Str("path", rel.Path).Str("class", class.String()).Msg("read failed")
		return Result[T]{Outcome: Failure, Value: fallback(), Err: err}
	}
	c.gate.RecordSuccess()
	value, err := decode(raw)
	if err != nil {
		c.log.Warn().Err(err).Str("path", rel.Path).Msg("read failed")
		return Result[T]{Outcome: Failure, Value: fallback(), Err: err}
	}
	return Result[T]{Outcome: Success, Value: value}
}

// write runs one gated mutation. Writes never fall back.
func (c *Client) write(ctx context.Context, method string, rel *url.URL, body any) (WriteResult, error) {
	if c.gate.Check() == reach.Deny {
		return WriteResult{}, &TransportError{Method: method, Path: rel.Path, Err: ErrOffline}
	}
	raw, err := c.transport.Do(ctx, method, rel, body)
	if err != nil {
		class := c.gate.RecordFailure(err)
		c.log.Warn().Err(err).Str("method", method).Str("path", rel.Path).Str("class", class.String()).Msg("write failed")
		return WriteResult{}, err
	}
	c.gate.RecordSuccess()
	result, err := decodeWrite(raw)
	if err != nil {
		return WriteResult{}, err
	}
	if !result.Success {
		if result.Message != "" {
			return result, &rejectedError{message: result.Message}
		}
		return result, ErrRejected
	}
	c.log.Info().Str("method", method).Str("path", rel.Path).Msg("write succeeded")
	return result, nil
}

type rejectedError struct{ message string }

func (e *rejectedError) Error() string        { return ErrRejected.Error() + ": " + e.message }
func (e *rejectedError) Is(target error) bool { return target == ErrRejected }
