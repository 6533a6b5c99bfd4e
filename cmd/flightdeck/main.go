package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmcdole/flightdeck/internal/api"
	"github.com/mmcdole/flightdeck/internal/notify"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	api.UserAgent = "flightdeck/" + Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	c := newCLI()
	err := c.root.ExecuteContext(ctx)
	stop()
	shown := c.errorShown()
	if cerr := c.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cerr)
	}

	switch {
	case err == nil:
	case errors.Is(err, api.ErrCanceled), errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "canceled")
		os.Exit(130)
	case shown:
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", notify.ErrorMessage(err))
		os.Exit(1)
	}
}
