//go:generate stringer -type=Kind

package closure

import (
	"github.com/pkg/errors"
)

// Kind discriminates the ways a compile request can fail.
type Kind int

const (
	Unknown Kind = iota
	// RemoteCompilation - the service answered, but the body starts with the
	// literal bytes "Error". The whole body is kept on the error.
	RemoteCompilation
	// Transport - the request never produced a complete response: dialing,
	// DNS, timeouts, cancellation or a truncated read.
	Transport
)

// Error is returned by Minify for every failed request.
type Error struct {
	Kind Kind
	// Body is the full response body for RemoteCompilation errors.
	Body []byte
	// Err is the underlying cause for Transport errors.
	Err error
}

func (e *Error) Error() string {
	if e.Kind == RemoteCompilation {
		return string(e.Body)
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func newTransportError(err error, message string) *Error {
	return &Error{Kind: Transport, Err: errors.Wrap(err, message)}
}

// KindOf returns the Kind of the first *Error in the chain, or Unknown.
func KindOf(err error) Kind {
	var closureErr *Error

	if errors.As(err, &closureErr) {
		return closureErr.Kind
	}

	return Unknown
}

// IsRemoteCompilation reports whether the service rejected the source.
func IsRemoteCompilation(err error) bool { return KindOf(err) == RemoteCompilation }

// IsTransport reports whether the request failed before a full response was read.
func IsTransport(err error) bool { return KindOf(err) == Transport }
