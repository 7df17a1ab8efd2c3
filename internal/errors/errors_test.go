package errors

import (
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
)

func TestSocketErrorMatchesConnectionBroken(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"zero progress", Broken("read", "10.0.0.5:49152")},
		{"wrapped os error", WrapSocket("write", "10.0.0.5:49152", syscall.EPIPE)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, ErrConnectionBroken) {
				t.Errorf("%v should match ErrConnectionBroken", tc.err)
			}
			if !IsConnectionBroken(tc.err) {
				t.Errorf("IsConnectionBroken(%v) = false", tc.err)
			}
		})
	}
}

func TestSocketErrorUnwrap(t *testing.T) {
	err := WrapSocket("write", "peer", syscall.EPIPE)
	if !errors.Is(err, syscall.EPIPE) {
		t.Errorf("underlying EPIPE should stay reachable, got %v", err)
	}
	if got := Broken("read", "peer").Unwrap(); got != nil {
		t.Errorf("zero-progress error should unwrap to nil, got %v", got)
	}
}

func TestSocketErrorMessage(t *testing.T) {
	if got, want := Broken("read", "peer").Error(), "read peer: connection broken"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapAccept(t *testing.T) {
	err := WrapAccept(":7777", net.ErrClosed)
	if !IsListenerClosed(err) {
		t.Errorf("closed listener should classify as ErrListenerClosed, got %v", err)
	}

	other := WrapAccept(":7777", syscall.EMFILE)
	if IsListenerClosed(other) {
		t.Errorf("EMFILE should not classify as listener closed")
	}
	var ae *AcceptError
	if !errors.As(other, &ae) {
		t.Fatalf("expected *AcceptError, got %T", other)
	}
	if !errors.Is(other, syscall.EMFILE) {
		t.Errorf("underlying EMFILE should stay reachable")
	}
}

func TestIsTransientAccept(t *testing.T) {
	if IsTransientAccept(nil) {
		t.Error("nil is not transient")
	}
	if IsTransientAccept(net.ErrClosed) {
		t.Error("closed listener is not transient")
	}
	tempErr := &net.OpError{Op: "accept", Err: syscall.ECONNABORTED}
	if !IsTransientAccept(tempErr) {
		t.Errorf("ECONNABORTED during accept should be transient")
	}
	if IsTransientAccept(fmt.Errorf("boom")) {
		t.Error("arbitrary errors are not transient")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if errors.Is(ErrExhausted, ErrConnectionBroken) ||
		errors.Is(ErrListenerClosed, ErrConnectionBroken) {
		t.Error("sentinels must not alias each other")
	}
}
