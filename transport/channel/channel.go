// Package channel provides an in-memory Go channel transport. It is useful for
// tests and for running both bridge sides inside one process.
package channel

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/drblury/ros2bridge/transport"
)

// TransportName is the name used to register this transport.
const TransportName = "channel"

// Factory allows overriding the channel creation for testing.
var Factory = func(cfg gochannel.Config, logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(cfg, logger)
}

func init() {
	Register()
}

// Register registers the channel transport with the default registry.
func Register() {
	transport.RegisterWithCapabilities(TransportName, Build, transport.ChannelCapabilities)
}

// Build creates a new Go channel transport.
func Build(ctx context.Context, cfg transport.Config, role transport.Role, logger watermill.LoggerAdapter) (transport.Transport, error) {
	pubSub := Factory(gochannel.Config{BlockPublishUntilSubscriberAck: true}, logger)
	return Wrap(pubSub, role), nil
}

// Wrap exposes the requested side of an existing GoChannel as a transport so
// two bridge sides can share one in-memory bus.
func Wrap(pubSub *gochannel.GoChannel, role transport.Role) transport.Transport {
	var (
		pub message.Publisher
		sub message.Subscriber
	)
	if role == transport.RolePublisher {
		pub = pubSub
	} else {
		sub = pubSub
	}
	return transport.Transport{Publisher: pub, Subscriber: sub}
}

// Capabilities returns the capabilities of this transport.
func Capabilities() transport.Capabilities {
	return transport.ChannelCapabilities
}
