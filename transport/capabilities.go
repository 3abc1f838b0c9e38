package transport

// Capabilities describes what a transport backend guarantees. The bridge logs
// them at startup so operators can see what ordering and acknowledgement the
// two sides provide.
type Capabilities struct {
	// Name is the human-readable name of the transport.
	Name string

	// SupportsOrdering indicates the transport delivers messages of one topic in order.
	SupportsOrdering bool

	// SupportsAck indicates the transport supports explicit message acknowledgment.
	SupportsAck bool

	// SupportsNack indicates the transport supports negative acknowledgment (redelivery).
	SupportsNack bool

	// SupportsTracing indicates the transport propagates metadata headers natively.
	SupportsTracing bool

	// MaxMessageSize is the maximum message size in bytes (0 = unlimited/unknown).
	MaxMessageSize int64
}

// PreservesOrder reports whether end-to-end relay order can be relied on when
// this transport is used on either side of the bridge.
func (c Capabilities) PreservesOrder() bool {
	return c.SupportsOrdering
}

// SupportsReliableDelivery returns true if the transport supports at-least-once
// delivery semantics (ack + nack).
func (c Capabilities) SupportsReliableDelivery() bool {
	return c.SupportsAck && c.SupportsNack
}

// Fits reports whether a payload of the given size is within MaxMessageSize.
func (c Capabilities) Fits(size int) bool {
	return c.MaxMessageSize == 0 || int64(size) <= c.MaxMessageSize
}

// Predefined capability sets for the built-in transports.
var (
	ChannelCapabilities = Capabilities{
		Name:             "channel",
		SupportsOrdering: true,
		SupportsAck:      true,
		SupportsNack:     true,
	}

	KafkaCapabilities = Capabilities{
		Name:             "kafka",
		SupportsOrdering: true,
		SupportsAck:      true,
		SupportsTracing:  true,
		MaxMessageSize:   1048576, // Default 1MB
	}

	RabbitMQCapabilities = Capabilities{
		Name:             "rabbitmq",
		SupportsOrdering: true,
		SupportsAck:      true,
		SupportsNack:     true,
		SupportsTracing:  true,
	}

	NATSCapabilities = Capabilities{
		Name:            "nats",
		SupportsTracing: true,
		MaxMessageSize:  1048576, // Default 1MB
	}

	HTTPCapabilities = Capabilities{
		Name:            "http",
		SupportsTracing: true,
	}

	AWSCapabilities = Capabilities{
		Name:             "aws",
		SupportsOrdering: true,
		SupportsAck:      true,
		SupportsNack:     true,
		SupportsTracing:  true,
		MaxMessageSize:   262144, // 256KB
	}
)
