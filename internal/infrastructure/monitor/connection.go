package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ProbeFunc reports whether a dependency is reachable.
type ProbeFunc func(ctx context.Context) error

type probe struct {
	name string
	fn   ProbeFunc
}

// Status is the result of one round of probes.
type Status struct {
	Services  map[string]bool `json:"services"`
	LastCheck time.Time       `json:"last_check"`
}

// Healthy reports whether every probe succeeded.
func (s Status) Healthy() bool {
	for _, ok := range s.Services {
		if !ok {
			return false
		}
	}
	return true
}

// Monitor runs the registered probes on demand.
type Monitor struct {
	timeout time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	probes []probe
}

func New(timeout time.Duration, logger *zap.Logger) *Monitor {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{timeout: timeout, logger: logger}
}

// Register adds a named probe. Nil probes are ignored.
func (m *Monitor) Register(name string, fn ProbeFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes = append(m.probes, probe{name: name, fn: fn})
}

// Check runs every probe concurrently, each bounded by the monitor timeout.
func (m *Monitor) Check(ctx context.Context) Status {
	m.mu.RLock()
	probes := append([]probe(nil), m.probes...)
	m.mu.RUnlock()

	status := Status{Services: make(map[string]bool, len(probes))}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, p := range probes {
		wg.Add(1)
		go func(p probe) {
			defer wg.Done()
			probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
			defer cancel()

			err := p.fn(probeCtx)
			if err != nil {
				m.logger.Warn("health probe failed", zap.String("service", p.name), zap.Error(err))
			}
			mu.Lock()
			status.Services[p.name] = err == nil
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	status.LastCheck = time.Now().UTC()
	return status
}
