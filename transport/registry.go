package transport

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
)

// Registry maps transport names to their builders and capabilities.
type Registry struct {
	mu           sync.RWMutex
	builders     map[string]Builder
	capabilities map[string]Capabilities
}

// DefaultRegistry is the global transport registry populated by the transport
// packages' init functions.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty transport registry.
func NewRegistry() *Registry {
	return &Registry{
		builders:     make(map[string]Builder),
		capabilities: make(map[string]Capabilities),
	}
}

// Register adds a transport builder to the registry.
// The name should match the PubSubSystem config value (e.g., "kafka", "rabbitmq").
func (r *Registry) Register(name string, builder Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = builder
}

// RegisterWithCapabilities adds a transport builder and its capabilities.
func (r *Registry) RegisterWithCapabilities(name string, builder Builder, caps Capabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = builder
	r.capabilities[name] = caps
}

// GetCapabilities returns the capabilities for a registered transport, or a
// zero Capabilities carrying only the name when unknown.
func (r *Registry) GetCapabilities(name string) Capabilities {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if caps, ok := r.capabilities[name]; ok {
		return caps
	}
	return Capabilities{Name: name}
}

// Build creates the requested side of the transport named by cfg.GetPubSubSystem.
func (r *Registry) Build(ctx context.Context, cfg Config, role Role, logger watermill.LoggerAdapter) (Transport, error) {
	if cfg == nil {
		return Transport{}, fmt.Errorf("config is required")
	}
	if role != RoleSubscriber && role != RolePublisher {
		return Transport{}, fmt.Errorf("invalid transport role %d", role)
	}

	name := cfg.GetPubSubSystem()

	r.mu.RLock()
	builder, ok := r.builders[name]
	r.mu.RUnlock()

	if !ok {
		return Transport{}, fmt.Errorf("unknown transport: %q (registered: %v)", name, r.Names())
	}

	return builder(ctx, cfg, role, logger)
}

// Names returns the registered transport names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a transport is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.builders[name]
	return ok
}

// RegisterWithCapabilities adds a transport builder and its capabilities to the default registry.
func RegisterWithCapabilities(name string, builder Builder, caps Capabilities) {
	DefaultRegistry.RegisterWithCapabilities(name, builder, caps)
}

// Build creates a transport using the default registry.
func Build(ctx context.Context, cfg Config, role Role, logger watermill.LoggerAdapter) (Transport, error) {
	return DefaultRegistry.Build(ctx, cfg, role, logger)
}

// GetCapabilities returns the capabilities for a transport in the default registry.
func GetCapabilities(name string) Capabilities {
	return DefaultRegistry.GetCapabilities(name)
}
