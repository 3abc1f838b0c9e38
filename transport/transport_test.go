package transport

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"

	"github.com/drblury/ros2bridge/transport/transporttest"
)

func TestRole_String(t *testing.T) {
	assert.Equal(t, "subscriber", RoleSubscriber.String())
	assert.Equal(t, "publisher", RolePublisher.String())
	assert.Equal(t, "unknown", Role(0).String())
}

func TestTransport_Close(t *testing.T) {
	t.Run("closes set handles", func(t *testing.T) {
		pub := &transporttest.Publisher{}
		sub := &transporttest.Subscriber{}

		assert.NoError(t, Transport{Publisher: pub, Subscriber: sub}.Close())
		assert.True(t, pub.Closed)
		assert.True(t, sub.Closed)
	})

	t.Run("empty transport", func(t *testing.T) {
		assert.NoError(t, Transport{}.Close())
	})

	t.Run("joins close errors", func(t *testing.T) {
		err := Transport{Publisher: failingPublisher{}}.Close()
		assert.ErrorContains(t, err, "close failed")
	})
}

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error {
	return nil
}

func (failingPublisher) Close() error {
	return errors.New("close failed")
}
