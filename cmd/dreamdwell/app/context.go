package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ContextWithSignals returns a context cancelled by the first SIGINT or
// SIGTERM, so commands such as serve can shut down gracefully. A second
// signal exits immediately with status 130.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 2)
	stopped := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigs:
			cancel()
		case <-stopped:
			return
		}
		select {
		case <-sigs:
			os.Exit(130)
		case <-stopped:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(stopped)
			cancel()
		})
	}
}
