// Package destination publishes envelopes onto the destination transport.
package destination

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/ros2bridge/internal/envelope"
	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
	idspkg "github.com/drblury/ros2bridge/internal/runtime/ids"
	metadatapkg "github.com/drblury/ros2bridge/internal/runtime/metadata"
	"github.com/drblury/ros2bridge/transport"
)

// Publisher publishes one envelope per call to a fixed topic.
type Publisher struct {
	publisher message.Publisher
	topic     string
	codec     envelope.Codec
	metadata  metadatapkg.Metadata
	caps      transport.Capabilities
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithCapabilities rejects payloads larger than caps.MaxMessageSize before
// they reach the transport.
func WithCapabilities(caps transport.Capabilities) Option {
	return func(p *Publisher) {
		p.caps = caps
	}
}

// NewPublisher returns a Publisher for topic. Every outgoing message carries
// the given metadata plus the codec content type.
func NewPublisher(publisher message.Publisher, topic string, codec envelope.Codec, metadata metadatapkg.Metadata, opts ...Option) (*Publisher, error) {
	if publisher == nil {
		return nil, errspkg.ErrPublisherRequired
	}
	if topic == "" {
		return nil, errspkg.ErrTopicRequired
	}
	if codec == nil {
		return nil, fmt.Errorf("%w: nil", errspkg.ErrUnknownCodec)
	}

	p := &Publisher{
		publisher: publisher,
		topic:     topic,
		codec:     codec,
		metadata:  metadata.With(metadatapkg.KeyContentType, codec.ContentType()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Topic returns the destination topic.
func (p *Publisher) Topic() string {
	return p.topic
}

// NewMessage encodes env into a Watermill message. Metadata attached to ctx
// with metadata.NewContext is added to the message headers.
func (p *Publisher) NewMessage(ctx context.Context, env envelope.Envelope) (*message.Message, error) {
	payload, err := p.codec.Encode(env)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}

	md := p.metadata.Clone()
	for k, v := range metadatapkg.FromContext(ctx) {
		md[k] = v
	}

	msg := message.NewMessage(idspkg.NewMessageID(), payload)
	msg.Metadata = metadatapkg.ToWatermill(md)
	msg.SetContext(ctx)
	return msg, nil
}

// Publish encodes and publishes env. It returns once the destination
// transport accepted or rejected the message.
func (p *Publisher) Publish(ctx context.Context, env envelope.Envelope) error {
	msg, err := p.NewMessage(ctx, env)
	if err != nil {
		return err
	}
	if !p.caps.Fits(len(msg.Payload)) {
		return fmt.Errorf("publish to %q: %w: %d bytes, %s allows %d", p.topic, errspkg.ErrMessageTooLarge, len(msg.Payload), p.caps.Name, p.caps.MaxMessageSize)
	}
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish to %q: %w", p.topic, err)
	}
	return nil
}

// Close closes the underlying transport publisher.
func (p *Publisher) Close() error {
	return p.publisher.Close()
}
