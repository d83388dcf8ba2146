package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/subtitle-improver/subsetup/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The first interrupt cancels ctx; restore default handling so a second
	// one terminates immediately.
	go func() {
		<-ctx.Done()
		stop()
	}()

	code := cli.Execute(ctx, version, commit, date)
	stop()
	os.Exit(code)
}
