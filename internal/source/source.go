// Package source adapts a Watermill subscription into the stream of results
// consumed by the bridge loop.
package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
	metadatapkg "github.com/drblury/ros2bridge/internal/runtime/metadata"
)

// MessageType is the robotics message type the bridge subscribes to.
const MessageType = "std_msgs/String"

// Message is one decoded message from the source topic.
type Message struct {
	Body     string
	Metadata metadatapkg.Metadata
	UUID     string
}

// Result is one item of the source stream: a decoded Message or the error
// that prevented decoding it.
type Result struct {
	Message Message
	Err     error

	ack func()
}

// Ok wraps a successfully received message.
func Ok(msg Message) Result {
	return Result{Message: msg}
}

// Failed wraps a receive error.
func Failed(err error) Result {
	return Result{Err: err}
}

// Ack releases the underlying transport message so it is not redelivered.
// It is a no-op for results built with Ok or Failed.
func (r Result) Ack() {
	if r.ack != nil {
		r.ack()
	}
}

// Subscribe subscribes to topic and decodes every delivered message with
// decoder. The returned channel is closed when the subscription ends, which
// for Watermill subscribers happens when ctx is cancelled or the subscriber
// is closed.
//
// The next transport message is not read until the previous Result has been
// acknowledged, so consumers see messages one at a time and in order.
func Subscribe(ctx context.Context, sub message.Subscriber, topic string, decoder Decoder) (<-chan Result, error) {
	if sub == nil {
		return nil, errspkg.ErrSubscriberRequired
	}
	if topic == "" {
		return nil, errspkg.ErrTopicRequired
	}
	if decoder == nil {
		return nil, fmt.Errorf("%w: nil", errspkg.ErrUnknownDecoder)
	}

	messages, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %q: %w", topic, err)
	}

	out := make(chan Result)
	go func() {
		defer close(out)
		for msg := range messages {
			result := decode(msg, decoder)
			acked := make(chan struct{})
			result.ack = sync.OnceFunc(func() {
				msg.Ack()
				close(acked)
			})

			select {
			case out <- result:
			case <-ctx.Done():
				msg.Nack()
				return
			}

			select {
			case <-acked:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func decode(msg *message.Message, decoder Decoder) Result {
	body, err := decoder.Decode(msg.Payload)
	if err != nil {
		return Failed(fmt.Errorf("message %s: %w", msg.UUID, err))
	}
	return Ok(Message{
		Body:     body,
		Metadata: metadatapkg.FromWatermill(msg.Metadata),
		UUID:     msg.UUID,
	})
}
