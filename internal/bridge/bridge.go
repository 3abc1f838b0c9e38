// Package bridge relays messages from the source stream to the destination
// publisher, one at a time and in receive order.
package bridge

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/drblury/ros2bridge/internal/envelope"
	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
	loggingpkg "github.com/drblury/ros2bridge/internal/runtime/logging"
	metadatapkg "github.com/drblury/ros2bridge/internal/runtime/metadata"
	"github.com/drblury/ros2bridge/internal/source"
)

const tracerName = "github.com/drblury/ros2bridge/internal/bridge"

// Publisher publishes one envelope per call.
type Publisher interface {
	Publish(ctx context.Context, env envelope.Envelope) error
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithMetrics records relay outcomes in m.
func WithMetrics(m *Metrics) Option {
	return func(b *Bridge) {
		b.metrics = m
	}
}

// WithClock replaces time.Now for envelope timestamps and publish timing.
func WithClock(now func() time.Time) Option {
	return func(b *Bridge) {
		if now != nil {
			b.now = now
		}
	}
}

// WithTracer replaces the global OpenTelemetry tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Bridge) {
		if tracer != nil {
			b.tracer = tracer
		}
	}
}

// WithTopic labels logs, spans and metrics with the destination topic.
func WithTopic(topic string) Option {
	return func(b *Bridge) {
		b.topic = topic
	}
}

// Bridge converts source messages into envelopes and publishes them.
type Bridge struct {
	publisher Publisher
	logger    loggingpkg.ServiceLogger
	metrics   *Metrics
	tracer    trace.Tracer
	now       func() time.Time
	topic     string
}

// New returns a Bridge publishing through publisher.
func New(publisher Publisher, logger loggingpkg.ServiceLogger, opts ...Option) (*Bridge, error) {
	if publisher == nil {
		return nil, errspkg.ErrPublisherRequired
	}
	if logger == nil {
		return nil, errspkg.ErrLoggerRequired
	}

	b := &Bridge{
		publisher: publisher,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Run consumes stream until it is closed. Every item is acknowledged after
// its publish attempt, whether or not the attempt succeeded; failed items are
// logged and dropped. The publish of one item completes before the next item
// is read.
func (b *Bridge) Run(ctx context.Context, stream <-chan source.Result) {
	b.logger.Info("ROS2 publisher bridge is running", loggingpkg.LogFields{"topic": b.topic})

	for result := range stream {
		b.relay(ctx, result)
	}

	b.logger.Info("ROS2 publisher bridge is shutting down", loggingpkg.LogFields{"topic": b.topic})
}

func (b *Bridge) relay(ctx context.Context, result source.Result) {
	defer result.Ack()

	if result.Err != nil {
		b.metrics.receiveError(b.topic)
		b.logger.Error("Receive error", result.Err, loggingpkg.LogFields{"topic": b.topic})
		return
	}

	env := envelope.New(result.Message.Body, b.now())

	ctx, span := b.tracer.Start(ctx, "RelayMessage", trace.WithSpanKind(trace.SpanKindProducer))
	defer span.End()
	span.SetAttributes(
		attribute.String("message.uuid", result.Message.UUID),
		attribute.String("messaging.destination.name", b.topic),
	)

	ctx = metadatapkg.NewContext(ctx, metadatapkg.Metadata{
		metadatapkg.KeySourceMessageUUID: result.Message.UUID,
	})

	start := b.now()
	err := b.publisher.Publish(ctx, env)
	took := b.now().Sub(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "publish failed")
		b.metrics.publishError(b.topic, took)
		b.logger.Error("Failed to publish", err, loggingpkg.LogFields{
			"topic":    b.topic,
			"envelope": env.String(),
		})
		return
	}

	b.metrics.relayed(b.topic, took)
	b.logger.Info("Proxied", loggingpkg.LogFields{
		"topic":    b.topic,
		"envelope": env.String(),
		"body":     env.Body,
	})
}
