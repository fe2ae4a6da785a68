package shutdown

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"timing-grid/internal/logger"
)

const component = "ShutdownManager"

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable.
type Func func()

func (f Func) Shutdown() { f() }

type entry struct {
	name      string
	component Shutdownable
}

// Manager shuts registered components down once, in reverse registration
// order, each bounded by a timeout.
type Manager struct {
	components []entry
	logger     logger.Logger
	timeout    time.Duration
	mu         sync.Mutex
	done       chan struct{}
}

func NewManager(log logger.Logger, timeout time.Duration) *Manager {
	return &Manager{
		logger:  log,
		timeout: timeout,
		done:    make(chan struct{}),
	}
}

func (m *Manager) Register(name string, c Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.components = append(m.components, entry{name: name, component: c})
}

// Listen calls onSignal on SIGINT or SIGTERM. onSignal runs on the signal
// goroutine and should hand off to the owner of the registered components,
// which then calls Shutdown. Listening ends once Shutdown has run.
func (m *Manager) Listen(onSignal func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		m.watch(sigChan, onSignal)
		signal.Stop(sigChan)
	}()
}

func (m *Manager) watch(sigChan <-chan os.Signal, onSignal func()) {
	select {
	case sig := <-sigChan:
		m.logger.Info(component, "shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		if onSignal != nil {
			onSignal()
		}
	case <-m.done:
	}
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.logger.Info(component, "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	for i := len(m.components) - 1; i >= 0; i-- {
		e := m.components[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			e.component.Shutdown()
		}()

		select {
		case <-done:
			m.logger.Debug(component, "component stopped", map[string]interface{}{"name": e.name})
		case <-time.After(m.timeout):
			m.logger.Warning(component, "component shutdown timeout", map[string]interface{}{
				"name": e.name,
			})
		}
	}

	m.logger.Info(component, "shutdown sequence completed", nil)
}
