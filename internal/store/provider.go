package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/waitdesk/waitdesk/internal/connector"
)

// PrimaryConnection is the registry name of the dashboard database.
const PrimaryConnection = "primary"

// Provider owns the process-wide store. The first call to Store connects and
// migrates; later calls return the same handle, or the same error. Close
// tears it down at exit.
type Provider struct {
	registry *connector.Registry
	cfg      connector.ConnectionConfig

	once  sync.Once
	store *Store
	err   error
}

// NewProvider returns a provider that will open cfg through registry.
func NewProvider(registry *connector.Registry, cfg connector.ConnectionConfig) *Provider {
	return &Provider{registry: registry, cfg: cfg}
}

// Store returns the shared store, opening it on first use.
func (p *Provider) Store(ctx context.Context) (*Store, error) {
	p.once.Do(func() {
		conn, err := p.registry.Connect(PrimaryConnection, p.cfg)
		if err != nil {
			p.err = err
			return
		}
		s, err := Open(ctx, conn)
		if err != nil {
			p.registry.Disconnect(PrimaryConnection)
			p.err = fmt.Errorf("open store: %w", err)
			return
		}
		p.store = s
	})
	return p.store, p.err
}

// Registry exposes the connector registry for health checks.
func (p *Provider) Registry() *connector.Registry {
	return p.registry
}

// Close disconnects every connection the provider opened.
func (p *Provider) Close() {
	p.registry.CloseAll()
}
