// Package errors provides domain-specific error types for companiond.
//
// These types carry structured context (operation, peer address) that
// helps callers decide how to handle failures and provides better
// diagnostics than plain string wrapping.
package errors

import (
	"errors"
	"fmt"
	"net"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	// ErrConnectionBroken signals that the companion closed the
	// connection or that a zero-progress I/O result was observed.
	// The bridge recovers from it by returning to the waiting state.
	ErrConnectionBroken = errors.New("connection broken")

	// ErrListenerClosed signals that the listening socket was torn
	// down while awaiting a connection. Callers treat it as a normal
	// stop signal, not a failure.
	ErrListenerClosed = errors.New("listener closed")

	// ErrExhausted signals that playlist navigation ran past a
	// boundary in the requested direction under the current mode.
	ErrExhausted = errors.New("playlist exhausted")
)

// ── Structured error types ───────────────────────────────────────────

// SocketError represents a failed operation on the client socket.
// Every SocketError matches ErrConnectionBroken under errors.Is; the
// underlying OS error, when there is one, stays reachable via Unwrap.
type SocketError struct {
	Op   string // "read", "write"
	Addr string // peer address, if known
	Err  error  // underlying error; nil for a zero-progress result
}

func (e *SocketError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: connection broken", e.Op, e.Addr)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *SocketError) Unwrap() error { return e.Err }

// Is makes every SocketError satisfy
// errors.Is(err, ErrConnectionBroken); the line socket surfaces
// exactly one error kind.
func (e *SocketError) Is(target error) bool {
	return target == ErrConnectionBroken
}

// AcceptError represents a failed accept on the listening socket.
type AcceptError struct {
	Addr string // listen address
	Err  error
}

func (e *AcceptError) Error() string {
	return fmt.Sprintf("accept %s: %v", e.Addr, e.Err)
}

func (e *AcceptError) Unwrap() error { return e.Err }

// ── Constructors ─────────────────────────────────────────────────────

// Broken creates a SocketError for a zero-progress read or write.
func Broken(op, addr string) *SocketError {
	return &SocketError{Op: op, Addr: addr}
}

// WrapSocket creates a SocketError carrying an underlying OS error.
func WrapSocket(op, addr string, err error) *SocketError {
	return &SocketError{Op: op, Addr: addr, Err: err}
}

// WrapAccept classifies an accept failure: a closed listener becomes
// ErrListenerClosed (wrapped with the listen address), anything else
// an AcceptError.
func WrapAccept(addr string, err error) error {
	if errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("accept %s: %w", addr, ErrListenerClosed)
	}
	return &AcceptError{Addr: addr, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsConnectionBroken reports whether err means the companion link is
// unusable and the bridge should wait for a new client.
func IsConnectionBroken(err error) bool {
	return errors.Is(err, ErrConnectionBroken)
}

// IsListenerClosed reports whether err means the listening socket was
// shut down during an accept.
func IsListenerClosed(err error) bool {
	return errors.Is(err, ErrListenerClosed)
}

// IsTransientAccept reports whether an accept failure is worth
// retrying (resource exhaustion, aborted handshakes) rather than a
// reason to stop listening.
func IsTransientAccept(err error) bool {
	if err == nil || errors.Is(err, net.ErrClosed) {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Temporary() //nolint:staticcheck // Temporary is deprecated but still useful
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use companiond/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
