// Command qconnect exposes every catalog operation as a subcommand.
//
// Example:
//
//	qconnect get-recommendations s-1 --assistant-id a-1 --max-result 5
//	qconnect send-message s-1 --assistant-id a-1 --message-value-text-value "hello" --force
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
