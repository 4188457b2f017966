package connector

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Factory is a function that creates a new Connector instance.
type Factory func() Connector

// Registry manages connector factories and the open connections built from
// them. The server keeps one connection named after the database it serves;
// tooling commands may open more.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	active    map[string]Connector // keyed by connection name
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		active:    make(map[string]Connector),
	}
}

// RegisterDriver registers a connector factory for a driver type.
func (r *Registry) RegisterDriver(driver string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[driver] = factory
}

// Drivers returns the registered driver names, sorted.
func (r *Registry) Drivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.availableDrivers()
}

// Connect creates a new connector for the given driver and connects it.
// An existing connection with the same name is closed and replaced.
func (r *Registry) Connect(name string, cfg ConnectionConfig) (Connector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	factory, ok := r.factories[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver: %s (available: %v)", cfg.Driver, r.availableDrivers())
	}

	cfg.DSN = SanitizeDSN(cfg.Driver, cfg.DSN)

	conn := factory()
	if err := conn.Connect(cfg); err != nil {
		return nil, fmt.Errorf("failed to connect %q: %w", name, err)
	}

	if existing, ok := r.active[name]; ok {
		existing.Disconnect()
	}

	r.active[name] = conn
	return conn, nil
}

// Get returns the connector registered under name.
func (r *Registry) Get(name string) (Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.active[name]
	if !ok {
		return nil, fmt.Errorf("connection %q not found (available: %v)", name, r.activeNames())
	}
	return conn, nil
}

// Ping checks every open connection and returns the first failure.
func (r *Registry) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.activeNames() {
		if err := r.active[name].Ping(ctx); err != nil {
			return fmt.Errorf("ping %q: %w", name, err)
		}
	}
	return nil
}

// Disconnect removes and disconnects a connection.
func (r *Registry) Disconnect(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.active[name]
	if !ok {
		return fmt.Errorf("connection %q not found", name)
	}

	err := conn.Disconnect()
	delete(r.active, name)
	return err
}

// CloseAll disconnects everything.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, conn := range r.active {
		conn.Disconnect()
		delete(r.active, name)
	}
}

// Names returns the open connection names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeNames()
}

func (r *Registry) availableDrivers() []string {
	drivers := make([]string, 0, len(r.factories))
	for d := range r.factories {
		drivers = append(drivers, d)
	}
	sort.Strings(drivers)
	return drivers
}

func (r *Registry) activeNames() []string {
	names := make([]string, 0, len(r.active))
	for n := range r.active {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
