package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnreachable matches any failure where no response was received.
	ErrUnreachable = errors.New("backend unreachable")
	// ErrOffline is wrapped when the reachability gate refused a call.
	ErrOffline = errors.New("offline: request not attempted")
	// ErrValidation matches input rejected before any request was sent.
	ErrValidation = errors.New("invalid request")
	// ErrRejected is returned when a write response reports success=false.
	ErrRejected = errors.New("request rejected by server")
)

// TransportError reports a request that never produced an HTTP response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrUnreachable) identify transport failures.
func (e *TransportError) Is(target error) bool { return target == ErrUnreachable }

// Transport marks the error as a transport-level failure for reach.Classify.
func (e *TransportError) Transport() bool { return true }

// ApplicationError is an HTTP error response from a reachable backend.
type ApplicationError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *ApplicationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.StatusCode)
}

// HTTPStatus returns the response status code.
func (e *ApplicationError) HTTPStatus() int { return e.StatusCode }

// ValidationError describes a malformed caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// errorDetail extracts a human readable message from an error body. The
// backend answers with {"detail": "..."} or a list of field errors.
func errorDetail(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return truncateDetail(strings.TrimSpace(string(body)))
	}
	if len(payload.Detail) > 0 {
		var text string
		if err := json.Unmarshal(payload.Detail, &text); err == nil {
			return text
		}
		var items []struct {
			Loc []any  `json:"loc"`
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if len(item.Loc) > 0 {
					msgs = append(msgs, fmt.Sprintf("%v: %s", item.Loc[len(item.Loc)-1], item.Msg))
				} else {
					msgs = append(msgs, item.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	return payload.Message
}

func truncateDetail(s string) string {
	const limit = 200
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
