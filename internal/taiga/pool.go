package taiga

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// ErrPoolClosed is returned for requests issued after pool shutdown.
var ErrPoolClosed = &Error{Kind: KindInternal, Message: "connection pool is shut down"}

// PoolConfig tunes the HTTP session pool.
type PoolConfig struct {
	MaxConnsPerHost int
	IdleConnTimeout time.Duration
	DialTimeout     time.Duration
}

// PoolStats is a snapshot of pool counters.
type PoolStats struct {
	InFlight     int64 `json:"in_flight"`
	Idle         int64 `json:"idle"`
	ConnsCreated int64 `json:"conns_created"`
	ConnsClosed  int64 `json:"conns_closed"`
}

// Pool is a process-wide pool of keep-alive connections. It implements
// http.RoundTripper over a shared transport, counts in-flight requests
// and connection churn, and supports graceful shutdown: new requests are
// rejected immediately, in-flight ones get a grace period, remaining
// connections are then closed forcibly.
type Pool struct {
	transport *http.Transport

	closed   atomic.Bool
	inFlight atomic.Int64
	created  atomic.Int64
	closedCt atomic.Int64

	mu    sync.Mutex
	conns map[*countingConn]struct{}
}

// NewPool creates a pool with the given limits.
func NewPool(cfg PoolConfig) *Pool {
	if cfg.MaxConnsPerHost <= 0 {
		cfg.MaxConnsPerHost = 10
	}
	if cfg.IdleConnTimeout <= 0 {
		cfg.IdleConnTimeout = 90 * time.Second
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}

	p := &Pool{conns: make(map[*countingConn]struct{})}
	dialer := &net.Dialer{Timeout: cfg.DialTimeout, KeepAlive: 30 * time.Second}
	p.transport = &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return p.track(conn), nil
		},
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		MaxIdleConns:        cfg.MaxConnsPerHost,
		MaxIdleConnsPerHost: cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}
	return p
}

// RoundTrip implements http.RoundTripper. Requests after shutdown fail
// immediately with ErrPoolClosed.
func (p *Pool) RoundTrip(req *http.Request) (*http.Response, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}
	p.inFlight.Add(1)
	resp, err := p.transport.RoundTrip(req)
	if err != nil {
		p.inFlight.Add(-1)
		return nil, err
	}
	// The request stays in flight until the response body is consumed.
	resp.Body = &trackedBody{ReadCloser: resp.Body, pool: p}
	return resp, nil
}

// Stats returns a snapshot of the pool counters. Idle approximates
// open connections not currently serving a request.
func (p *Pool) Stats() PoolStats {
	created := p.created.Load()
	closed := p.closedCt.Load()
	inFlight := p.inFlight.Load()
	idle := created - closed - inFlight
	if idle < 0 {
		idle = 0
	}
	return PoolStats{
		InFlight:     inFlight,
		Idle:         idle,
		ConnsCreated: created,
		ConnsClosed:  closed,
	}
}

// Close shuts the pool down. In-flight requests get until the context
// deadline (or gracePeriod if the context has none) to finish, after
// which remaining connections are closed forcibly.
func (p *Pool) Close(ctx context.Context, gracePeriod time.Duration) error {
	if p.closed.Swap(true) {
		return nil // already closed
	}

	deadline := time.Now().Add(gracePeriod)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for p.inFlight.Load() > 0 && time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			p.forceClose()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	p.forceClose()
	return nil
}

func (p *Pool) forceClose() {
	p.transport.CloseIdleConnections()
	p.mu.Lock()
	for conn := range p.conns {
		_ = conn.Close()
	}
	p.mu.Unlock()
}

func (p *Pool) track(conn net.Conn) *countingConn {
	cc := &countingConn{Conn: conn, pool: p}
	p.created.Add(1)
	p.mu.Lock()
	p.conns[cc] = struct{}{}
	p.mu.Unlock()
	return cc
}

// countingConn updates pool counters when the transport closes it.
type countingConn struct {
	net.Conn
	pool *Pool
	once sync.Once
}

func (c *countingConn) Close() error {
	err := c.Conn.Close()
	c.once.Do(func() {
		c.pool.closedCt.Add(1)
		c.pool.mu.Lock()
		delete(c.pool.conns, c)
		c.pool.mu.Unlock()
	})
	return err
}

// trackedBody decrements the in-flight counter when the response body
// is closed.
type trackedBody struct {
	io.ReadCloser
	pool *Pool
	once sync.Once
}

func (b *trackedBody) Close() error {
	err := b.ReadCloser.Close()
	b.once.Do(func() { b.pool.inFlight.Add(-1) })
	return err
}
