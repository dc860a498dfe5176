package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(&options{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
