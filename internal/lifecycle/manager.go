package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tutormesh/tutormesh/internal/logging"
)

// Manager starts registered components in dependency order and stops them in
// reverse start order. A failed start rolls back components that already
// started.
type Manager struct {
	mu           sync.Mutex
	components   []Component
	dependencies map[Component][]Component
	started      []Component
	logger       *logging.Logger
}

// NewManager creates a lifecycle manager.
func NewManager() *Manager {
	return &Manager{
		dependencies: make(map[Component][]Component),
		logger:       logging.GetLogger("lifecycle"),
	}
}

// Register registers a component with optional dependencies. Dependencies
// must already be registered; duplicate registration is rejected.
func (m *Manager) Register(component Component, dependsOn ...Component) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if component == nil {
		return fmt.Errorf("cannot register nil component")
	}
	if component.Name() == "" {
		return fmt.Errorf("component must have a non-empty name")
	}
	for _, c := range m.components {
		if c == component {
			return fmt.Errorf("component %s is already registered", component.Name())
		}
	}
	for _, dep := range dependsOn {
		registered := false
		for _, c := range m.components {
			if c == dep {
				registered = true
				break
			}
		}
		if !registered {
			return fmt.Errorf("dependency %s is not registered", dep.Name())
		}
	}

	m.components = append(m.components, component)
	m.dependencies[component] = dependsOn
	m.logger.Debug("Registered component %s with %d dependencies", component.Name(), len(dependsOn))
	return nil
}

// Start starts all registered components in dependency order. If any
// component fails, already-started components are stopped in reverse order
// and the error is returned.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started = nil
	for _, component := range m.sorted() {
		m.logger.Info("Starting %s", component.Name())
		begin := time.Now()

		if err := component.Start(ctx); err != nil {
			m.logger.Error("Failed to start %s: %v", component.Name(), err)
			m.rollback()
			return fmt.Errorf("initialization failed for %s: %w", component.Name(), err)
		}

		m.started = append(m.started, component)
		m.logger.Info("%s started (took %dms)", component.Name(), time.Since(begin).Milliseconds())
	}

	m.logger.Info("All components started")
	return nil
}

// Stop stops all started components in reverse start order. Errors are
// logged and collected; a failing component does not block the others.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for i := len(m.started) - 1; i >= 0; i-- {
		component := m.started[i]
		m.logger.Info("Stopping %s", component.Name())
		if err := component.Stop(ctx); err != nil {
			m.logger.Error("Failed to stop %s: %v", component.Name(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	m.started = nil
	return firstErr
}

// rollback stops started components in reverse order after a failed Start.
func (m *Manager) rollback() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for i := len(m.started) - 1; i >= 0; i-- {
		component := m.started[i]
		if err := component.Stop(ctx); err != nil {
			m.logger.Error("Rollback stop of %s failed: %v", component.Name(), err)
		}
	}
	m.started = nil
}

// sorted returns components in dependency order.
func (m *Manager) sorted() []Component {
	visited := make(map[Component]bool)
	var order []Component

	var visit func(c Component)
	visit = func(c Component) {
		if visited[c] {
			return
		}
		visited[c] = true
		for _, dep := range m.dependencies[c] {
			visit(dep)
		}
		order = append(order, c)
	}

	for _, c := range m.components {
		visit(c)
	}
	return order
}
