// Package kafka provides a Kafka transport.
package kafka

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/ros2bridge/transport"
)

// TransportName is the name used to register this transport.
const TransportName = "kafka"

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg kafka.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return kafka.NewPublisher(cfg, logger)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg kafka.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return kafka.NewSubscriber(cfg, logger)
}

func init() {
	Register()
}

// Register registers the Kafka transport with the default registry.
func Register() {
	transport.RegisterWithCapabilities(TransportName, Build, transport.KafkaCapabilities)
}

// Build creates the requested side of a Kafka transport.
func Build(ctx context.Context, cfg transport.Config, role transport.Role, logger watermill.LoggerAdapter) (transport.Transport, error) {
	brokers := cfg.GetKafkaBrokers()

	if role == transport.RolePublisher {
		publisher, err := PublisherFactory(
			kafka.PublisherConfig{
				Brokers:   brokers,
				Marshaler: kafka.DefaultMarshaler{},
			},
			logger,
		)
		if err != nil {
			return transport.Transport{}, err
		}
		return transport.Transport{Publisher: publisher}, nil
	}

	subscriber, err := SubscriberFactory(
		kafka.SubscriberConfig{
			Brokers:       brokers,
			Unmarshaler:   kafka.DefaultMarshaler{},
			ConsumerGroup: cfg.GetKafkaConsumerGroup(),
		},
		logger,
	)
	if err != nil {
		return transport.Transport{}, err
	}
	return transport.Transport{Subscriber: subscriber}, nil
}

// Capabilities returns the capabilities of this transport.
func Capabilities() transport.Capabilities {
	return transport.KafkaCapabilities
}
