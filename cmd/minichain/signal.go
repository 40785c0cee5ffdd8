package minichain

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// handleInterrupt cancels on SIGINT or SIGTERM until the returned stop is
// called.
func handleInterrupt(cancel context.CancelFunc) (stop func()) {
	c := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-c:
			slog.Info("Received interrupt signal, shutting down...")
			cancel()
		case <-done:
		}
	}()
	return func() {
		signal.Stop(c)
		close(done)
	}
}
