// Package main is the entry point for the acp CLI application.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/eykd/acp-go/cmd"
)

func main() {
	// Cancelling on SIGINT stops a running git command and releases the lock.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cmd.Main(ctx)
	cancel()
	os.Exit(code)
}
