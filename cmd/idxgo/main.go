package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hupe1980/idxgo"
)

// shutdown is set once the process has been told to exit. Readers opened by
// the commands consult it when closing.
var shutdown idxgo.ShutdownFlag

func main() {
	// Load .env if present, e.g. for AWS credentials and region.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown.Set()
	}()

	if err := createRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
