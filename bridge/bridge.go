package bridge

import (
	"context"
	"strings"

	"companiond/internal/errors"
	"companiond/internal/metrics"
	"companiond/util"
)

// AckLine is sent back for every line received.  It confirms framing
// only, not that the command itself succeeded.
const AckLine = "200/OK"

// Console consumes companion commands.  Start repeatedly invokes the
// provided input function and dispatches each token sequence; it
// returns the input function's error, or nil once the console has
// gone offline.
type Console interface {
	Online() bool
	Start(next func() ([]string, error)) error
}

// Bridge connects the companion socket to a console.  It alternates
// between two states: waiting for a companion and serving one.  A
// broken connection sends it back to waiting; the console going
// offline ends the loop.
type Bridge struct {
	srv     *Server
	console Console
	logger  *util.Logger
	metrics *metrics.Collector

	client *LineSocket // connection currently being served
}

// New creates a Bridge serving the given console.  collector may be
// nil to disable metrics.
func New(srv *Server, console Console, logger *util.Logger, collector *metrics.Collector) *Bridge {
	return &Bridge{
		srv:     srv,
		console: console,
		logger:  logger,
		metrics: collector,
	}
}

// NextCommand receives one line from the companion, acknowledges it,
// and splits it on single spaces into tokens: the command name
// followed by its arguments.  One acknowledgement is sent per line
// received, regardless of whether the command is valid.
func (b *Bridge) NextCommand() ([]string, error) {
	line, err := b.client.RecvLine()
	if err != nil {
		return nil, err
	}
	b.metrics.LineReceived(int64(len(line)) + 1)

	if err := b.client.SendLine(AckLine); err != nil {
		return nil, err
	}
	b.metrics.AckSent(int64(len(AckLine)) + 1)

	return strings.Split(line, " "), nil
}

// Run drives the accept/serve loop until the console reports itself
// offline or the context is cancelled.  A companion disconnect is
// logged and the bridge returns to waiting; it never crashes the
// loop.
func (b *Bridge) Run(ctx context.Context) error {
	// Tear the listener down when the context expires, unblocking a
	// pending Accept or RecvLine.
	go func() {
		<-ctx.Done()
		b.srv.Close() //nolint:errcheck
	}()

	for b.console.Online() {
		b.logger.Debug("companion socket open, awaiting connection")

		sock, err := b.srv.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.IsListenerClosed(err) {
				b.logger.Debug("wait for companion interrupted: %v", err)
				continue
			}
			return err
		}

		b.client = sock
		b.metrics.CompanionConnected(sock.Peer())
		b.logger.Info("companion connected from %s", sock.Peer())

		if err := b.console.Start(b.NextCommand); err != nil {
			if !errors.IsConnectionBroken(err) {
				return err
			}
			b.metrics.CompanionDisconnected()
			b.logger.Info("companion disconnected")
		}
	}
	return nil
}

// Stop disconnects the companion and the listener, ending a running
// loop once the console goes offline.
func (b *Bridge) Stop() error {
	return b.srv.Close()
}
