package cmd

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"companiond/util"
)

func TestExecuteVersion(t *testing.T) {
	if err := Execute(context.Background(), []string{"--version"}); err != nil {
		t.Errorf("Execute --version: %v", err)
	}
}

func TestExecuteHelp(t *testing.T) {
	if err := Execute(context.Background(), []string{"--help"}); err != nil {
		t.Errorf("Execute --help: %v", err)
	}
}

func TestExecuteUnknownFlag(t *testing.T) {
	if err := Execute(context.Background(), []string{"--bogus"}); err == nil {
		t.Error("unknown flag should error")
	}
}

func TestExecuteRejectsBadPort(t *testing.T) {
	if err := Execute(context.Background(), []string{"-p", "0"}); err == nil {
		t.Error("port 0 should fail validation")
	}
	if err := Execute(context.Background(), []string{"-p", "70000"}); err == nil {
		t.Error("out-of-range port should fail validation")
	}
}

func TestExecuteRejectsBadMode(t *testing.T) {
	if err := Execute(context.Background(), []string{"-m", "shuffle"}); err == nil {
		t.Error("unknown playlist mode should fail validation")
	}
}

func TestExecuteEnvOverlay(t *testing.T) {
	t.Setenv("COMPANION_PLAYLIST_MODE", "shuffle")
	if err := Execute(context.Background(), []string{}); err == nil {
		t.Error("invalid mode from environment should fail validation")
	}
}

func TestExecuteRejectsMissingConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	if err := Execute(context.Background(), []string{"-c", path}); err == nil {
		t.Error("explicit missing config file should error")
	}
}

func TestExecuteRejectsMalformedConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("port: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Execute(context.Background(), []string{"-c", path}); err == nil {
		t.Error("malformed config file should error")
	}
}

// TestExecuteServesUntilCancelled runs the real bridge briefly.
func TestExecuteServesUntilCancelled(t *testing.T) {
	port, err := util.FindFreePort()
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Execute(ctx, []string{"-p", strconv.Itoa(port)})
	}()

	// The socket should come up and accept a companion.
	addr := util.FormatAddr("127.0.0.1", port)
	var conn net.Conn
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if conn, err = net.DialTimeout("tcp", addr, time.Second); err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Execute after cancel = %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Execute did not stop after cancellation")
	}
}
