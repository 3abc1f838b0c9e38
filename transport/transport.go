// Package transport defines the interfaces shared by the bridge transports. Each
// transport lives in its own sub-package and registers itself with the registry.
package transport

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Role tells a builder which half of the transport the bridge needs.
type Role int

const (
	// RoleSubscriber builds only the Subscriber (the source side).
	RoleSubscriber Role = iota + 1
	// RolePublisher builds only the Publisher (the destination side).
	RolePublisher
)

func (r Role) String() string {
	switch r {
	case RoleSubscriber:
		return "subscriber"
	case RolePublisher:
		return "publisher"
	default:
		return "unknown"
	}
}

// Transport holds the handles produced by a builder. Only the half matching the
// requested Role is set.
type Transport struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
}

// Close closes whichever handles are set.
func (t Transport) Close() error {
	var errs []error
	if t.Publisher != nil {
		errs = append(errs, t.Publisher.Close())
	}
	if t.Subscriber != nil {
		errs = append(errs, t.Subscriber.Close())
	}
	return errors.Join(errs...)
}

// Builder creates one side of a transport from config.
type Builder func(ctx context.Context, cfg Config, role Role, logger watermill.LoggerAdapter) (Transport, error)

// Config provides the values transports read. It lets transports depend on
// this narrow view rather than the full config package.
type Config interface {
	GetPubSubSystem() string

	// Kafka
	GetKafkaBrokers() []string
	GetKafkaConsumerGroup() string

	// RabbitMQ
	GetRabbitMQURL() string

	// NATS
	GetNATSURL() string

	// HTTP
	GetHTTPServerAddress() string
	GetHTTPPublisherURL() string

	// AWS
	GetAWSRegion() string
	GetAWSAccountID() string
	GetAWSAccessKeyID() string
	GetAWSSecretAccessKey() string
	GetAWSEndpoint() string
}
