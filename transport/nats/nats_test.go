package nats

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drblury/ros2bridge/transport"
	"github.com/drblury/ros2bridge/transport/transporttest"
)

func TestRegister(t *testing.T) {
	original := transport.DefaultRegistry
	defer func() { transport.DefaultRegistry = original }()

	transport.DefaultRegistry = transport.NewRegistry()
	Register()

	caps := transport.GetCapabilities(TransportName)
	assert.Equal(t, "nats", caps.Name)
	assert.False(t, caps.SupportsAck)
	assert.False(t, caps.PreservesOrder())
}

func TestCapabilities(t *testing.T) {
	assert.Equal(t, transport.NATSCapabilities, Capabilities())
}

func TestConnectionOptions(t *testing.T) {
	var opts natsgo.Options
	for _, apply := range ConnectionOptions() {
		require.NoError(t, apply(&opts))
	}

	assert.Equal(t, ClientName, opts.Name)
	assert.True(t, opts.RetryOnFailedConnect)
	assert.Equal(t, -1, opts.MaxReconnect)
	assert.Equal(t, reconnectWait, opts.ReconnectWait)
}

func TestBuild(t *testing.T) {
	cfg := &transporttest.Config{NATSURL: "nats://localhost:4222"}

	t.Run("publisher role disables jetstream", func(t *testing.T) {
		originalPub, originalSub := PublisherFactory, SubscriberFactory
		defer func() { PublisherFactory, SubscriberFactory = originalPub, originalSub }()

		mockPub := &transporttest.Publisher{}
		PublisherFactory = func(c nats.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			assert.Equal(t, "nats://localhost:4222", c.URL)
			assert.True(t, c.JetStream.Disabled)
			assert.NotEmpty(t, c.NatsOptions)
			return mockPub, nil
		}
		SubscriberFactory = func(c nats.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			t.Fatal("subscriber must not be built for the publisher role")
			return nil, nil
		}

		tr, err := Build(context.Background(), cfg, transport.RolePublisher, watermill.NopLogger{})

		require.NoError(t, err)
		assert.Equal(t, mockPub, tr.Publisher)
		assert.Nil(t, tr.Subscriber)
	})

	t.Run("subscriber role", func(t *testing.T) {
		originalPub, originalSub := PublisherFactory, SubscriberFactory
		defer func() { PublisherFactory, SubscriberFactory = originalPub, originalSub }()

		mockSub := &transporttest.Subscriber{}
		SubscriberFactory = func(c nats.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			assert.Equal(t, "nats://localhost:4222", c.URL)
			assert.True(t, c.JetStream.Disabled)
			return mockSub, nil
		}

		tr, err := Build(context.Background(), cfg, transport.RoleSubscriber, watermill.NopLogger{})

		require.NoError(t, err)
		assert.Equal(t, mockSub, tr.Subscriber)
		assert.Nil(t, tr.Publisher)
	})

	t.Run("propagates factory errors", func(t *testing.T) {
		originalSub := SubscriberFactory
		defer func() { SubscriberFactory = originalSub }()

		SubscriberFactory = func(c nats.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			return nil, errors.New("subscriber error")
		}

		_, err := Build(context.Background(), cfg, transport.RoleSubscriber, watermill.NopLogger{})
		assert.ErrorContains(t, err, "subscriber error")
	})
}
