// Command leaguectl runs the account consistency routines against the
// configured document store without going through the HTTP API.
//
// Usage:
//
//	leaguectl duplicates
//	leaguectl sync-email --old a@x.com --new b@x.com --type player --id P1
//	leaguectl update-account --id P1 --type player --set jerseyNumber=7 --set position=Forward
//	leaguectl backup --out snapshot.json --collections teams,users
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dalemusser/leaguehub/internal/app/store/docs"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env from the working directory if present
	_ = godotenv.Load(".env")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &cliEnv{
		cfg: cfg,
		log: logger,
		out: os.Stdout,
		open: func(ctx context.Context) (docs.Store, func(), error) {
			conn, err := docs.Open(ctx, cfg.storeOptions(), logger)
			if err != nil {
				return nil, nil, err
			}
			return conn.Store, func() { _ = conn.Close(context.Background()) }, nil
		},
	}

	if err := newRootCmd(env).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
