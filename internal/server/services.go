package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
)

// HTTPService runs an *http.Server as a Service.
type HTTPService struct {
	Server *http.Server
	// ShutdownTimeout bounds the graceful shutdown; zero means 10s.
	ShutdownTimeout time.Duration
}

// Start listens and serves until Stop.
//
// Postcondition: Returns nil after a graceful Stop.
func (h *HTTPService) Start() error {
	if err := h.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down, closing it if in-flight requests outlive the timeout.
func (h *HTTPService) Stop() {
	timeout := h.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := h.Server.Shutdown(ctx); err != nil {
		_ = h.Server.Close()
	}
}

// GRPCService runs a *grpc.Server on Addr as a Service.
type GRPCService struct {
	Server *grpc.Server
	Addr   string
}

// Start listens on Addr and serves until Stop.
func (g *GRPCService) Start() error {
	lis, err := net.Listen("tcp", g.Addr)
	if err != nil {
		return err
	}
	return g.Server.Serve(lis)
}

// Stop gracefully stops the server.
func (g *GRPCService) Stop() { g.Server.GracefulStop() }

// LoopService runs a function that blocks until its context is cancelled.
type LoopService struct {
	Run func(ctx context.Context)

	once    sync.Once
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	started atomic.Bool
}

func (l *LoopService) init() {
	l.once.Do(func() {
		l.ctx, l.cancel = context.WithCancel(context.Background())
		l.done = make(chan struct{})
	})
}

// Start runs Run until Stop. Run returns immediately if Stop came first.
func (l *LoopService) Start() error {
	l.init()
	l.started.Store(true)
	defer close(l.done)
	l.Run(l.ctx)
	return nil
}

// Stop cancels Run and waits for it to return.
func (l *LoopService) Stop() {
	l.init()
	l.cancel()
	if l.started.Load() {
		<-l.done
	}
}
