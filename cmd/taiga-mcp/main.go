// Command taiga-mcp serves the Taiga project-management API as an MCP
// server over stdio or streamable HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taigaio/taiga-mcp/internal/config"
	"github.com/taigaio/taiga-mcp/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 on clean shutdown, 1 on a
// configuration error, 2 on an unrecoverable runtime error.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "taiga-mcp: %v\n", err)
		return 1
	}

	// stdout carries the stdio transport; logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer cancel()

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err.Error())
		return 2
	}

	runErr := srv.Start(ctx)

	shutCtx, shutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("shutdown failed", "error", err.Error())
		return 2
	}

	if runErr != nil {
		logger.Error("server failed", "error", runErr.Error())
		return 2
	}
	return 0
}
