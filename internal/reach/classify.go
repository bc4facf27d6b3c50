package reach

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

// Class groups call failures by how the gate should react to them.
type Class int

const (
	ClassNone Class = iota
	// ClassCanceled is a caller-initiated cancellation.
	ClassCanceled
	// ClassApplication covers any failure where the backend answered.
	ClassApplication
	// ClassTransport covers failures where no response was received.
	ClassTransport
)

func (c Class) String() string {
	switch c {
	case ClassCanceled:
		return "canceled"
	case ClassApplication:
		return "application"
	case ClassTransport:
		return "transport"
	default:
		return "none"
	}
}

// statusCoder is implemented by errors that carry an HTTP response status.
type statusCoder interface {
	HTTPStatus() int
}

// transportMarker is implemented by errors that wrap a failed round trip.
type transportMarker interface {
	Transport() bool
}

// Responded reports whether err carries an HTTP status, meaning the backend
// sent a response.
func Responded(err error) bool {
	var sc statusCoder
	return errors.As(err, &sc)
}

// Classify maps an error to a Class. Unknown errors count as application
// failures so only positively identified network trouble flips the gate.
func Classify(err error) Class {
	if err == nil {
		return ClassNone
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		return ClassApplication
	}
	// Timeouts surface as DeadlineExceeded and must be checked before Canceled.
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTransport
	}
	if errors.Is(err, context.Canceled) {
		return ClassCanceled
	}
	var tm transportMarker
	if errors.As(err, &tm) && tm.Transport() {
		return ClassTransport
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassTransport
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ClassTransport
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return ClassTransport
	}
	return ClassApplication
}
