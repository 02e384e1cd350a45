package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

var (
	// ErrValidation is returned before any network traffic when a request
	// would be rejected anyway, e.g. an empty title.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when the target id is absent server-side.
	ErrNotFound = errors.New("item not found")
	// ErrTransport matches every *TransportError via errors.Is.
	ErrTransport = errors.New("transport error")
)

// TransportKind classifies a transport failure for diagnostics.
type TransportKind string

const (
	KindTimeout           TransportKind = "timeout"
	KindConnectionRefused TransportKind = "connection refused"
	KindBadStatus         TransportKind = "bad status"
	KindDecode            TransportKind = "decode"
	KindNetwork           TransportKind = "network"
)

// TransportError is a network failure, timeout or non-2xx response of a
// remote store call.
type TransportError struct {
	Op         string
	Kind       TransportKind
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Kind == KindBadStatus {
		return fmt.Sprintf("%s: %s %d: %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func newTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, Kind: classify(err), Err: err}
}

func classify(err error) TransportKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindConnectionRefused
	}
	return KindNetwork
}
