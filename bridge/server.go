package bridge

import (
	"context"
	"net"
	"sync"

	"companiond/internal/errors"
	"companiond/internal/retry"
	"companiond/util"
)

// Server owns the listening socket for the companion.  At most one
// client is active at a time: accepting a new companion closes the
// previous connection before the new one is handed out.
type Server struct {
	ln      net.Listener
	addr    string
	logger  *util.Logger
	backoff *retry.Backoff

	mu       sync.Mutex
	client   *LineSocket
	lastPeer string
}

// Listen binds a TCP listener with SO_REUSEADDR on host:port so a
// restarted bridge can rebind while the old socket lingers in
// TIME_WAIT.
func Listen(ctx context.Context, host string, port int, logger *util.Logger) (*Server, error) {
	lc := net.ListenConfig{Control: reuseAddr}
	ln, err := lc.Listen(ctx, "tcp", util.FormatAddr(host, port))
	if err != nil {
		return nil, err
	}
	logger.Verbose("listening on %s (tcp)", ln.Addr())
	return &Server{
		ln:      ln,
		addr:    ln.Addr().String(),
		logger:  logger,
		backoff: retry.DefaultAcceptBackoff(),
	}, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string { return s.addr }

// Accept blocks until a companion connects and returns a LineSocket
// for it.  Transient accept failures (aborted handshakes, descriptor
// exhaustion) are retried with backoff; a closed listener surfaces as
// ErrListenerClosed, which callers treat as a normal stop signal.
//
// Any previously accepted connection is closed before the new one is
// returned — the old LineSocket becomes unusable by design.
func (s *Server) Accept(ctx context.Context) (*LineSocket, error) {
	var conn net.Conn
	err := s.backoff.Do(ctx, func(attempt int) error {
		c, err := s.ln.Accept()
		if err != nil {
			if errors.IsTransientAccept(err) {
				s.logger.Debug("transient accept failure (attempt %d): %v", attempt, err)
				return err
			}
			return retry.Permanent(errors.WrapAccept(s.addr, err))
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	sock := newLineSocket(conn)

	s.mu.Lock()
	if s.client != nil {
		s.client.Close() //nolint:errcheck
	}
	s.client = sock
	s.lastPeer = sock.Peer()
	s.mu.Unlock()

	return sock, nil
}

// Peer returns the address of the current or most recent companion,
// or "" when none has connected yet.
func (s *Server) Peer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPeer
}

// Close shuts down the listener and, when a companion is connected,
// its socket too.  Safe to call at any time, including concurrently
// with a blocked Accept or RecvLine, which then fail with
// ErrListenerClosed and ErrConnectionBroken respectively.  Calling
// Close twice is harmless.
func (s *Server) Close() error {
	err := s.ln.Close()

	s.mu.Lock()
	if s.client != nil {
		s.client.Close() //nolint:errcheck
		s.client = nil
	}
	s.mu.Unlock()

	if err != nil && errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
