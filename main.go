// Companiond - bridges a remote companion app to the local bot console
// over a line-oriented TCP socket.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"companiond/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "companiond: %v\n", err)
		os.Exit(1)
	}
}
