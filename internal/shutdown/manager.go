package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"binary-morphology/internal/logger"
)

// Shutdownable is implemented by components that hold releasable resources.
type Shutdownable interface {
	Shutdown()
}

const componentTimeout = 5 * time.Second

// Manager releases registered components in reverse registration order, once,
// either on demand or on SIGINT/SIGTERM.
type Manager struct {
	components []Shutdownable
	log        logger.Logger
	mu         sync.Mutex
	done       chan struct{}
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}

	return &Manager{
		components: make([]Shutdownable, 0),
		log:        log,
		done:       make(chan struct{}),
	}
}

func (m *Manager) Register(component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, component)
}

// Listen installs a signal handler that runs the shutdown sequence and exits.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		m.log.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		m.Shutdown()
		os.Exit(1)
	}()
}

// Shutdown releases all registered components. Safe to call more than once.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.log.Debug("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	for i := len(m.components) - 1; i >= 0; i-- {
		component := m.components[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			component.Shutdown()
		}()

		select {
		case <-finished:
		case <-time.After(componentTimeout):
			m.log.Warning("ShutdownManager", "component shutdown timed out", map[string]interface{}{
				"index": i,
			})
		}
	}
}
