package api

import (
	"net/url"
	"strconv"
	"strings"
)

// Outcome discriminates how a read completed.
type Outcome int

const (
	// Success carries real data from the backend.
	Success Outcome = iota
	// Fallback carries the operation's default payload because the backend
	// is presumed unreachable.
	Fallback
	// Failure carries an error the caller must surface. Value still holds the
	// fallback payload so views can render.
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Fallback:
		return "fallback"
	case Failure:
		return "failure"
	default:
		return "success"
	}
}

// Result is the three-outcome return of a read operation.
type Result[T any] struct {
	Outcome Outcome
	Value   T
	// Err is always set on Failure. On Fallback it holds the transport error
	// that caused the outage, or nil when the gate refused the call.
	Err error
}

// OK reports whether the value came from the backend.
func (r Result[T]) OK() bool { return r.Outcome == Success }

// Page is the normalized form of every list response.
type Page[T any] struct {
	Items  []T
	Total  int
	Offset int
	Limit  int
}

// HasNext reports whether another page exists after this one.
func (p Page[T]) HasNext() bool {
	return p.Offset+len(p.Items) < p.Total
}

const (
	// DefaultPageSize is the list size used when a request leaves Limit unset.
	DefaultPageSize = 20
	// MaxPageSize is the largest limit the backend accepts.
	MaxPageSize = 100
)

// ListRequest is a paginated list query.
type ListRequest struct {
	Offset int
	Limit  int
	Search string
}

// NewListRequest returns the first page of size limit.
func NewListRequest(limit int) ListRequest {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return ListRequest{Limit: limit}
}

// WithSearch returns a copy with the search term set. Changing the term
// always resets the offset to the first page.
func (r ListRequest) WithSearch(term string) ListRequest {
	term = strings.TrimSpace(term)
	if term != r.Search {
		r.Offset = 0
	}
	r.Search = term
	return r
}

// Next returns the request for the following page.
func (r ListRequest) Next() ListRequest {
	r.Offset += r.limit()
	return r
}

// Prev returns the request for the previous page, clamped at zero.
func (r ListRequest) Prev() ListRequest {
	r.Offset -= r.limit()
	if r.Offset < 0 {
		r.Offset = 0
	}
	return r
}

// Page returns the 1-based page number.
func (r ListRequest) Page() int {
	return r.Offset/r.limit() + 1
}

// Validate rejects out of range pagination.
func (r ListRequest) Validate() error {
	if r.Offset < 0 {
		return invalid("offset", "must be >= 0, got %d", r.Offset)
	}
	if r.Limit <= 0 || r.Limit > MaxPageSize {
		return invalid("limit", "must be between 1 and %d, got %d", MaxPageSize, r.Limit)
	}
	return nil
}

func (r ListRequest) limit() int {
	if r.Limit <= 0 {
		return DefaultPageSize
	}
	return r.Limit
}

// values encodes the request using the backend's skip/limit naming.
func (r ListRequest) values() url.Values {
	values := url.Values{}
	values.Set("skip", strconv.Itoa(r.Offset))
	values.Set("limit", strconv.Itoa(r.limit()))
	if r.Search != "" {
		values.Set("search", r.Search)
	}
	return values
}

// IngredientQuery extends ListRequest with the vague filter.
type IngredientQuery struct {
	ListRequest
	// IsVague filters by vagueness when non-nil.
	IsVague *bool
}

// WithSearch keeps the vague filter while resetting the offset.
func (q IngredientQuery) WithSearch(term string) IngredientQuery {
	q.ListRequest = q.ListRequest.WithSearch(term)
	return q
}

// WithVague sets the vague filter and resets the offset when it changes.
func (q IngredientQuery) WithVague(v *bool) IngredientQuery {
	if !sameBool(q.IsVague, v) {
		q.Offset = 0
	}
	q.IsVague = v
	return q
}

func (q IngredientQuery) values() url.Values {
	values := q.ListRequest.values()
	if q.IsVague != nil {
		values.Set("is_vague", strconv.FormatBool(*q.IsVague))
	}
	return values
}

func sameBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
