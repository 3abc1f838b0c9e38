// Package rabbitmq provides a RabbitMQ/AMQP transport.
package rabbitmq

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/v3/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/ros2bridge/transport"
)

// TransportName is the name used to register this transport.
const TransportName = "rabbitmq"

// ConnectionFactory allows overriding the connection creation for testing.
var ConnectionFactory = func(cfg amqp.ConnectionConfig, logger watermill.LoggerAdapter) (*amqp.ConnectionWrapper, error) {
	return amqp.NewConnection(cfg, logger)
}

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg amqp.Config, logger watermill.LoggerAdapter, conn *amqp.ConnectionWrapper) (message.Publisher, error) {
	return amqp.NewPublisherWithConnection(cfg, logger, conn)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg amqp.Config, logger watermill.LoggerAdapter, conn *amqp.ConnectionWrapper) (message.Subscriber, error) {
	return amqp.NewSubscriberWithConnection(cfg, logger, conn)
}

func init() {
	Register()
}

// Register registers the RabbitMQ transport with the default registry.
func Register() {
	transport.RegisterWithCapabilities(TransportName, Build, transport.RabbitMQCapabilities)
}

// Build opens one AMQP connection and creates the requested side on it.
// Queues are named after the topic, so a restarted bridge resumes the same
// queue.
func Build(ctx context.Context, cfg transport.Config, role transport.Role, logger watermill.LoggerAdapter) (transport.Transport, error) {
	url := cfg.GetRabbitMQURL()

	amqpConfig := amqp.NewDurablePubSubConfig(
		url,
		amqp.GenerateQueueNameTopicName,
	)

	conn, err := ConnectionFactory(amqp.ConnectionConfig{
		AmqpURI:   url,
		Reconnect: amqp.DefaultReconnectConfig(),
	}, logger)
	if err != nil {
		return transport.Transport{}, err
	}

	if role == transport.RolePublisher {
		publisher, err := PublisherFactory(amqpConfig, logger, conn)
		if err != nil {
			return transport.Transport{}, err
		}
		return transport.Transport{Publisher: publisher}, nil
	}

	subscriber, err := SubscriberFactory(amqpConfig, logger, conn)
	if err != nil {
		return transport.Transport{}, err
	}
	return transport.Transport{Subscriber: subscriber}, nil
}

// Capabilities returns the capabilities of this transport.
func Capabilities() transport.Capabilities {
	return transport.RabbitMQCapabilities
}
