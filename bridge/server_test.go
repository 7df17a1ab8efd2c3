package bridge

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	bridgeerr "companiond/internal/errors"
	"companiond/util"
)

func listenLocal(t *testing.T) *Server {
	t.Helper()
	srv, err := Listen(context.Background(), "127.0.0.1", 0, util.NewLogger(0))
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func TestAcceptReturnsConnectedSocket(t *testing.T) {
	srv := listenLocal(t)

	accepted := make(chan *LineSocket, 1)
	go func() {
		sock, err := srv.Accept(context.Background())
		if err != nil {
			t.Errorf("Accept: %v", err)
			return
		}
		accepted <- sock
	}()

	conn, err := net.DialTimeout("tcp", srv.Addr(), 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	select {
	case sock := <-accepted:
		defer sock.Close()
		if sock.Peer() == "" {
			t.Error("peer address not recorded")
		}
		if srv.Peer() != sock.Peer() {
			t.Errorf("server peer = %q, socket peer = %q", srv.Peer(), sock.Peer())
		}

		go conn.Write([]byte("hello\n"))
		line, err := sock.RecvLine()
		if err != nil || line != "hello" {
			t.Errorf("RecvLine = %q, %v", line, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Accept did not return")
	}
}

func TestAcceptReplacesPreviousClient(t *testing.T) {
	srv := listenLocal(t)
	ctx := context.Background()

	first, err := net.DialTimeout("tcp", srv.Addr(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()
	s1, err := srv.Accept(ctx)
	if err != nil {
		t.Fatalf("first Accept: %v", err)
	}

	second, err := net.DialTimeout("tcp", srv.Addr(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	s2, err := srv.Accept(ctx)
	if err != nil {
		t.Fatalf("second Accept: %v", err)
	}
	defer s2.Close()

	// The first companion's connection was closed server-side.
	first.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := first.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("first client read = %v, want EOF", err)
	}

	// And the old LineSocket is unusable.
	if _, err := s1.RecvLine(); !bridgeerr.IsConnectionBroken(err) {
		t.Errorf("old socket RecvLine = %v, want connection-broken", err)
	}
}

func TestCloseUnblocksAccept(t *testing.T) {
	srv := listenLocal(t)

	result := make(chan error, 1)
	go func() {
		_, err := srv.Accept(context.Background())
		result <- err
	}()

	time.Sleep(50 * time.Millisecond) // let Accept block
	srv.Close()

	select {
	case err := <-result:
		if !bridgeerr.IsListenerClosed(err) {
			t.Errorf("Accept after Close = %v, want listener-closed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Accept did not unblock")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	srv := listenLocal(t)
	if err := srv.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := srv.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestCloseDisconnectsClient(t *testing.T) {
	srv := listenLocal(t)

	conn, err := net.DialTimeout("tcp", srv.Addr(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if _, err := srv.Accept(context.Background()); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	srv.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := conn.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("client read after Close = %v, want EOF", err)
	}
}
