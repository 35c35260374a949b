// Package server is the composition root: it builds every singleton
// leaves-first, registers the catalog, runs the selected transport,
// and tears everything down in reverse order.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/taigaio/taiga-mcp/internal/catalog"
	"github.com/taigaio/taiga-mcp/internal/config"
	"github.com/taigaio/taiga-mcp/internal/middleware"
	"github.com/taigaio/taiga-mcp/internal/taiga"
)

const (
	Name    = "taiga-mcp"
	Version = "1.0.0"

	shutdownGrace = 10 * time.Second
)

// Server owns the full object graph. Construction wires everything;
// Start runs the transport until the context is cancelled; Shutdown
// releases resources in reverse construction order.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	pool   *taiga.Pool
	client *taiga.Client
	cached *taiga.CachedClient
	mcp    *mcpserver.MCPServer

	mu       sync.Mutex
	started  bool
	shutDown bool
}

// New constructs the object graph: pool, client, cached client,
// middleware chain, and the MCP server with the registered catalog.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	pool := taiga.NewPool(taiga.PoolConfig{
		MaxConnsPerHost: cfg.MaxConnsPerHost,
		IdleConnTimeout: cfg.IdleConnTimeout,
		DialTimeout:     cfg.Timeout,
	})

	client := taiga.NewClient(taiga.ClientConfig{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.Timeout,
		AuthToken: cfg.AuthToken,
	}, pool)

	cached := taiga.NewCachedClient(
		client,
		taiga.NewPolicy(cfg.TTLOverrides),
		cfg.CacheMaxSize,
		cfg.CacheTTL,
		cfg.CacheEnabled,
	)

	// Built once and shared by every registered handler: the rate
	// limiter in particular holds the process-wide token bucket.
	// Outermost first: the deadline bounds everything including retry
	// sleeps and limiter waits, logging sits closest to the handler so
	// its end record sees the final outcome.
	mws := []middleware.Middleware{
		middleware.Deadline(invocationBudget(cfg)),
		middleware.Errors(logger, middleware.RetryConfig{
			MaxRetries: cfg.MaxRetries,
			Backoff:    cfg.RetryBackoff,
			BackoffCap: cfg.RetryBackoffCap,
			Production: cfg.Production,
		}),
		middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		middleware.Timing(),
		middleware.Logging(logger, cfg.Secrets()),
	}
	chain := func(h middleware.Handler) middleware.Handler {
		return middleware.Chain(h, mws...)
	}

	m := mcpserver.NewMCPServer(Name, Version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(true, true),
		mcpserver.WithPromptCapabilities(true),
		mcpserver.WithRecovery(),
	)

	if err := catalog.Register(m, catalog.Deps{
		Client: cached,
		Auth:   client,
		Chain:  chain,
	}); err != nil {
		return nil, err
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		client: client,
		cached: cached,
		mcp:    m,
	}, nil
}

// invocationBudget is the deadline for one invocation: the per-request
// timeout for every attempt plus the capped backoff sleeps in between.
func invocationBudget(cfg *config.Config) time.Duration {
	attempts := time.Duration(cfg.MaxRetries + 1)
	return attempts*cfg.Timeout + time.Duration(cfg.MaxRetries)*cfg.RetryBackoffCap
}

// Client exposes the cached client for tests and management surfaces.
func (s *Server) Client() *taiga.CachedClient { return s.cached }

// Start runs the configured transport until ctx is cancelled or the
// transport fails. It blocks.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.shutDown {
		s.mu.Unlock()
		return errors.New("server already shut down")
	}
	if s.started {
		s.mu.Unlock()
		return errors.New("server already started")
	}
	s.started = true
	s.mu.Unlock()

	s.login(ctx)

	switch s.cfg.Transport {
	case config.TransportStdio:
		s.logger.Info("serving", "transport", "stdio")
		stdio := mcpserver.NewStdioServer(s.mcp)
		return stdio.Listen(ctx, os.Stdin, os.Stdout)

	case config.TransportHTTP:
		addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
		s.logger.Info("serving", "transport", "http", "addr", addr)
		httpSrv := mcpserver.NewStreamableHTTPServer(s.mcp)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return httpSrv.Start(addr)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return httpSrv.Shutdown(shutCtx)
		})
		if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http transport: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown transport %q", s.cfg.Transport)
	}
}

// login bootstraps the session from configured credentials. A static
// token was already installed at client construction; a failure here
// is a warning, tools can authenticate later via taiga_auth_login.
func (s *Server) login(ctx context.Context) {
	if s.cfg.AuthToken != "" || !s.cfg.HasCredentials() {
		return
	}
	info, err := s.client.Login(ctx, s.cfg.Username, s.cfg.Password)
	if err != nil {
		s.logger.Warn("startup login failed", "error", err.Error())
		return
	}
	s.logger.Info("authenticated", "username", info.Username)
}

// Shutdown releases resources in reverse construction order: the
// registries and cache need no teardown, the client drops its session,
// the pool drains in-flight requests up to the grace period.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return errors.New("server never started")
	}
	if s.shutDown {
		s.mu.Unlock()
		return errors.New("server already shut down")
	}
	s.shutDown = true
	s.mu.Unlock()

	s.client.Logout()
	if err := s.pool.Close(ctx, shutdownGrace); err != nil {
		return fmt.Errorf("close pool: %w", err)
	}
	s.logger.Info("shutdown complete")
	return nil
}
