//go:build windows

package bridge

import "syscall"

// Windows allows rebinding a listening address out of the box, so no
// socket option is needed there.
func reuseAddr(network, address string, c syscall.RawConn) error {
	return nil
}
