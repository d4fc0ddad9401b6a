package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		// An interrupt already terminated the run; nothing useful to add.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "medley: %v\n", err)
		}
		os.Exit(1)
	}
}
