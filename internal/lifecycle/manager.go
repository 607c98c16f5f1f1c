package lifecycle

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownFunc describes a graceful shutdown callback.
type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

// Manager runs the server until it fails or a termination signal arrives,
// then releases the registered components in reverse order.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger
	signals []os.Signal

	mu    sync.Mutex
	hooks []hook
	done  bool
}

// New creates a lifecycle manager with the desired shutdown timeout.
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger,
		signals: []os.Signal{syscall.SIGTERM, syscall.SIGINT},
	}
}

// Register adds a shutdown hook. Hooks are executed in reverse order.
func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
}

// RegisterCloser adds a hook for a component that only knows how to Close.
func (m *Manager) RegisterCloser(name string, c io.Closer) {
	if c == nil {
		return
	}
	m.Register(name, func(context.Context) error { return c.Close() })
}

// Run calls serve and blocks until it returns or ctx is cancelled by a
// signal. Shutdown always runs before Run returns.
func (m *Manager) Run(ctx context.Context, serve func() error) error {
	ctx, stop := signal.NotifyContext(ctx, m.signals...)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- serve() }()

	var serveErr error
	select {
	case serveErr = <-errCh:
		if serveErr != nil {
			m.logger.Error("server stopped unexpectedly", zap.Error(serveErr))
		}
	case <-ctx.Done():
		m.logger.Info("shutdown signal received")
	}

	return errors.Join(serveErr, m.Shutdown(context.Background()))
}

// Shutdown executes all registered hooks once, respecting the configured timeout.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done {
		return nil
	}
	m.done = true

	var result error
	for i := len(m.hooks) - 1; i >= 0; i-- {
		h := m.hooks[i]
		if err := h.fn(ctx); err != nil {
			m.logger.Error("shutdown hook failed", zap.String("component", h.name), zap.Error(err))
			result = errors.Join(result, err)
			continue
		}
		m.logger.Info("component stopped", zap.String("component", h.name))
	}
	return result
}
