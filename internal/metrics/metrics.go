// Package metrics provides lightweight counters for tracking runtime
// statistics of a companion session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for the companion bridge.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	connectionsTotal atomic.Int64
	disconnects      atomic.Int64
	linesReceived    atomic.Int64
	acksSent         atomic.Int64
	bytesIn          atomic.Int64
	bytesOut         atomic.Int64
	commandErrors    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastPeer     string
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Connection metrics ───────────────────────────────────────────────

// CompanionConnected records an accepted companion and its address.
func (c *Collector) CompanionConnected(peer string) {
	if c == nil {
		return
	}
	c.connectionsTotal.Add(1)
	c.mu.Lock()
	c.lastPeer = peer
	c.mu.Unlock()
}

// CompanionDisconnected records a broken or replaced connection.
func (c *Collector) CompanionDisconnected() {
	if c == nil {
		return
	}
	c.disconnects.Add(1)
}

// TotalConnections returns the lifetime companion connection count.
func (c *Collector) TotalConnections() int64 {
	if c == nil {
		return 0
	}
	return c.connectionsTotal.Load()
}

// Disconnects returns the number of connection resets observed.
func (c *Collector) Disconnects() int64 {
	if c == nil {
		return 0
	}
	return c.disconnects.Load()
}

// ── Line metrics ─────────────────────────────────────────────────────

// LineReceived records one framed command line of n bytes.
func (c *Collector) LineReceived(n int64) {
	if c == nil {
		return
	}
	c.linesReceived.Add(1)
	c.bytesIn.Add(n)
}

// AckSent records one acknowledgement line of n bytes.
func (c *Collector) AckSent(n int64) {
	if c == nil {
		return
	}
	c.acksSent.Add(1)
	c.bytesOut.Add(n)
}

// LinesReceived returns the number of complete lines framed so far.
func (c *Collector) LinesReceived() int64 {
	if c == nil {
		return 0
	}
	return c.linesReceived.Load()
}

// AcksSent returns the number of acknowledgements written.
func (c *Collector) AcksSent() int64 {
	if c == nil {
		return 0
	}
	return c.acksSent.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.commandErrors.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.commandErrors.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	ConnectionsTotal int64  `json:"connections_total"`
	Disconnects      int64  `json:"disconnects"`
	LinesReceived    int64  `json:"lines_received"`
	AcksSent         int64  `json:"acks_sent"`
	BytesIn          int64  `json:"bytes_in"`
	BytesOut         int64  `json:"bytes_out"`
	CommandErrors    int64  `json:"command_errors"`
	LastPeer         string `json:"last_peer,omitempty"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:           time.Since(c.startTime).Truncate(time.Second).String(),
		ConnectionsTotal: c.connectionsTotal.Load(),
		Disconnects:      c.disconnects.Load(),
		LinesReceived:    c.linesReceived.Load(),
		AcksSent:         c.acksSent.Load(),
		BytesIn:          c.bytesIn.Load(),
		BytesOut:         c.bytesOut.Load(),
		CommandErrors:    c.commandErrors.Load(),
		LastPeer:         c.lastPeer,
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}
