package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
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
	assert.Equal(t, "kafka", caps.Name)
	assert.True(t, caps.SupportsOrdering)
	assert.False(t, caps.SupportsNack)
	assert.True(t, caps.SupportsTracing)
}

func TestCapabilities(t *testing.T) {
	assert.Equal(t, transport.KafkaCapabilities, Capabilities())
}

func TestBuild(t *testing.T) {
	cfg := &transporttest.Config{
		PubSubSystem:       TransportName,
		KafkaBrokers:       []string{"localhost:9092"},
		KafkaConsumerGroup: "bridge-group",
	}

	t.Run("publisher role builds only the publisher", func(t *testing.T) {
		originalPub, originalSub := PublisherFactory, SubscriberFactory
		defer func() { PublisherFactory, SubscriberFactory = originalPub, originalSub }()

		mockPub := &transporttest.Publisher{}
		PublisherFactory = func(c kafka.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			assert.Equal(t, []string{"localhost:9092"}, c.Brokers)
			return mockPub, nil
		}
		SubscriberFactory = func(c kafka.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			t.Fatal("subscriber must not be built for the publisher role")
			return nil, nil
		}

		tr, err := Build(context.Background(), cfg, transport.RolePublisher, watermill.NopLogger{})

		require.NoError(t, err)
		assert.Equal(t, mockPub, tr.Publisher)
		assert.Nil(t, tr.Subscriber)
	})

	t.Run("subscriber role uses the consumer group", func(t *testing.T) {
		originalPub, originalSub := PublisherFactory, SubscriberFactory
		defer func() { PublisherFactory, SubscriberFactory = originalPub, originalSub }()

		mockSub := &transporttest.Subscriber{}
		PublisherFactory = func(c kafka.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			t.Fatal("publisher must not be built for the subscriber role")
			return nil, nil
		}
		SubscriberFactory = func(c kafka.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			assert.Equal(t, []string{"localhost:9092"}, c.Brokers)
			assert.Equal(t, "bridge-group", c.ConsumerGroup)
			return mockSub, nil
		}

		tr, err := Build(context.Background(), cfg, transport.RoleSubscriber, watermill.NopLogger{})

		require.NoError(t, err)
		assert.Equal(t, mockSub, tr.Subscriber)
		assert.Nil(t, tr.Publisher)
	})

	t.Run("propagates factory errors", func(t *testing.T) {
		originalPub, originalSub := PublisherFactory, SubscriberFactory
		defer func() { PublisherFactory, SubscriberFactory = originalPub, originalSub }()

		PublisherFactory = func(c kafka.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
			return nil, errors.New("publisher error")
		}
		SubscriberFactory = func(c kafka.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
			return nil, errors.New("subscriber error")
		}

		_, err := Build(context.Background(), cfg, transport.RolePublisher, watermill.NopLogger{})
		assert.ErrorContains(t, err, "publisher error")

		_, err = Build(context.Background(), cfg, transport.RoleSubscriber, watermill.NopLogger{})
		assert.ErrorContains(t, err, "subscriber error")
	})
}
