// Package server runs the process's long-lived services (HTTP, gRPC, the
// session ticker) and shuts them down in reverse order on a signal or on the
// first service failure.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component of the valouniversaire process.
type Service interface {
	// Start blocks until the service is stopped or fails.
	Start() error
	// Stop asks a running Start to return. It may be called before Start.
	Stop()
}

// Lifecycle owns the process's services. They start together and stop in
// reverse registration order, so the session driver registered first is the
// last to stop and in-flight requests still find their sessions.
type Lifecycle struct {
	logger *zap.Logger

	mu       sync.Mutex
	services []namedService
}

type namedService struct {
	name    string
	service Service
}

// NewLifecycle returns an empty Lifecycle.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Add registers svc under name.
//
// Precondition: name must be non-empty; svc must be non-nil; Run has not started.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Names lists the registered services in start order.
func (l *Lifecycle) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, len(l.services))
	for i, ns := range l.services {
		names[i] = ns.name
	}
	return names
}

// Run starts every service and blocks until SIGINT or SIGTERM, ctx
// cancellation, or the first service failure, then stops them all.
//
// Postcondition: every service has been stopped. The returned error is the
// failure that triggered shutdown, or nil for a signal or cancellation.
func (l *Lifecycle) Run(ctx context.Context) error {
	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	began := time.Now()
	failures := l.startAll(services)
	l.logger.Info("services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(began)),
	)

	failure := l.wait(ctx, failures)
	l.stopAll(services)
	l.logger.Info("shutdown complete", zap.Duration("uptime", time.Since(began)))
	return failure
}

// startAll launches each service on its own goroutine. The returned channel
// receives one error per failed service.
func (l *Lifecycle) startAll(services []namedService) <-chan error {
	failures := make(chan error, len(services))
	for _, ns := range services {
		go func() {
			log := l.logger.With(zap.String("service", ns.name))
			log.Info("starting service")
			up := time.Now()
			if err := ns.service.Start(); err != nil {
				log.Error("service failed", zap.Error(err), zap.Duration("uptime", time.Since(up)))
				failures <- fmt.Errorf("service %s: %w", ns.name, err)
			}
		}()
	}
	return failures
}

func (l *Lifecycle) wait(ctx context.Context, failures <-chan error) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return nil
	case err := <-failures:
		l.logger.Error("service error, shutting down", zap.Error(err))
		return err
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
		return nil
	}
}

func (l *Lifecycle) stopAll(services []namedService) {
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		began := time.Now()
		ns.service.Stop()
		l.logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(began)),
		)
	}
}
