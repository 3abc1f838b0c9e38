// Package nats provides a NATS Core transport.
package nats

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"github.com/drblury/ros2bridge/transport"
)

// TransportName is the name used to register this transport.
const TransportName = "nats"

// ClientName identifies the bridge connection on the NATS server.
const ClientName = "ros2bridge"

const reconnectWait = 2 * time.Second

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg nats.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return nats.NewPublisher(cfg, logger)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg nats.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return nats.NewSubscriber(cfg, logger)
}

func init() {
	Register()
}

// Register registers the NATS transport with the default registry.
func Register() {
	transport.RegisterWithCapabilities(TransportName, Build, transport.NATSCapabilities)
}

// Build creates the requested side of a core NATS transport. JetStream is
// disabled; durable streams are outside what the bridge relies on.
func Build(ctx context.Context, cfg transport.Config, role transport.Role, logger watermill.LoggerAdapter) (transport.Transport, error) {
	url := cfg.GetNATSURL()
	marshaler := &nats.NATSMarshaler{}
	options := ConnectionOptions()
	jetStream := nats.JetStreamConfig{Disabled: true}

	if role == transport.RolePublisher {
		publisher, err := PublisherFactory(
			nats.PublisherConfig{
				URL:         url,
				NatsOptions: options,
				Marshaler:   marshaler,
				JetStream:   jetStream,
			},
			logger,
		)
		if err != nil {
			return transport.Transport{}, err
		}
		return transport.Transport{Publisher: publisher}, nil
	}

	subscriber, err := SubscriberFactory(
		nats.SubscriberConfig{
			URL:         url,
			NatsOptions: options,
			Unmarshaler: marshaler,
			JetStream:   jetStream,
		},
		logger,
	)
	if err != nil {
		return transport.Transport{}, err
	}
	return transport.Transport{Subscriber: subscriber}, nil
}

// ConnectionOptions returns the client options used for every connection.
func ConnectionOptions() []natsgo.Option {
	return []natsgo.Option{
		natsgo.Name(ClientName),
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(reconnectWait),
	}
}

// Capabilities returns the capabilities of this transport.
func Capabilities() transport.Capabilities {
	return transport.NATSCapabilities
}
