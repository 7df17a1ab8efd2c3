// Package bridge implements the companion socket: a single-client TCP
// server that frames the byte stream into newline-terminated lines and
// feeds each line as a command into a console.
package bridge

import (
	"bytes"
	"io"
	"net"
	"strings"

	"companiond/internal/errors"
)

// readChunkSize is how many bytes a single socket read may return.
const readChunkSize = 1024

// LineSocket wraps one accepted connection and frames its byte stream
// into lines.  Bytes received past the last newline are retained in a
// leftover buffer for the next RecvLine call, so a single read may
// carry zero, one, or several lines without losing data.
//
// LineSocket is not safe for concurrent use; the bridge loop is its
// only caller.  Closing the connection from another goroutine is the
// supported way to interrupt a blocked call and surfaces as a
// connection-broken error.
type LineSocket struct {
	conn     net.Conn
	leftover []byte // bytes after the last consumed newline
	peer     string
}

func newLineSocket(conn net.Conn) *LineSocket {
	return &LineSocket{
		conn: conn,
		peer: conn.RemoteAddr().String(),
	}
}

// Peer returns the remote address of the companion.
func (s *LineSocket) Peer() string { return s.peer }

// Close shuts the connection down.  Safe to call more than once.
func (s *LineSocket) Close() error { return s.conn.Close() }

// RecvLine blocks until a full newline-terminated line has been
// received and returns it without the terminator.  The leftover buffer
// is drained before the socket is read again.  A peer that closes the
// connection before completing a line yields ErrConnectionBroken; any
// partial bytes are discarded, never returned as a truncated line.
func (s *LineSocket) RecvLine() (string, error) {
	var line []byte

	// Leftover from a previous read may already hold a complete line.
	if len(s.leftover) > 0 {
		if i := bytes.IndexByte(s.leftover, '\n'); i >= 0 {
			line = append(line, s.leftover[:i]...)
			s.leftover = append([]byte(nil), s.leftover[i+1:]...)
			return string(line), nil
		}
		line = append(line, s.leftover...)
		s.leftover = nil
	}

	buf := make([]byte, readChunkSize)
	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if i := bytes.IndexByte(chunk, '\n'); i >= 0 {
				line = append(line, chunk[:i]...)
				// buf is reused on the next call, so the remainder
				// must be copied out.
				s.leftover = append([]byte(nil), chunk[i+1:]...)
				return string(line), nil
			}
			line = append(line, chunk...)
		}
		if err != nil {
			if err == io.EOF {
				return "", errors.Broken("read", s.peer)
			}
			return "", errors.WrapSocket("read", s.peer, err)
		}
		if n == 0 {
			return "", errors.Broken("read", s.peer)
		}
	}
}

// SendLine writes msg to the companion, appending a newline terminator
// only when msg does not already end with one.  Short writes are
// retried with the unsent suffix; a write that makes no progress
// yields ErrConnectionBroken.
func (s *LineSocket) SendLine(msg string) error {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	data := []byte(msg)

	total := 0
	for total < len(data) {
		n, err := s.conn.Write(data[total:])
		if err != nil {
			return errors.WrapSocket("write", s.peer, err)
		}
		if n == 0 {
			return errors.Broken("write", s.peer)
		}
		total += n
	}
	return nil
}
