package transport

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"

	newtransport "github.com/drblury/ros2bridge/transport"

	// Register the built-in transports.
	_ "github.com/drblury/ros2bridge/transport/transports"
)

// Factory abstracts how the bridge initialises its two transports.
type Factory interface {
	Build(ctx context.Context, cfg newtransport.Config, role newtransport.Role, logger watermill.LoggerAdapter) (newtransport.Transport, error)
	Capabilities(name string) Capabilities
}

// DefaultFactory returns the factory backed by the default transport registry.
func DefaultFactory() Factory {
	return registryFactory{registry: newtransport.DefaultRegistry}
}

// NewRegistryFactory returns a factory backed by registry.
func NewRegistryFactory(registry *newtransport.Registry) Factory {
	return registryFactory{registry: registry}
}

type registryFactory struct {
	registry *newtransport.Registry
}

// Build builds the requested side and checks the builder returned it.
func (f registryFactory) Build(ctx context.Context, cfg newtransport.Config, role newtransport.Role, logger watermill.LoggerAdapter) (newtransport.Transport, error) {
	t, err := f.registry.Build(ctx, cfg, role, logger)
	if err != nil {
		return newtransport.Transport{}, err
	}

	switch {
	case role == newtransport.RolePublisher && t.Publisher == nil:
		_ = t.Close()
		return newtransport.Transport{}, fmt.Errorf("transport %q returned no publisher", cfg.GetPubSubSystem())
	case role == newtransport.RoleSubscriber && t.Subscriber == nil:
		_ = t.Close()
		return newtransport.Transport{}, fmt.Errorf("transport %q returned no subscriber", cfg.GetPubSubSystem())
	}
	return t, nil
}

func (f registryFactory) Capabilities(name string) Capabilities {
	return f.registry.GetCapabilities(name)
}
