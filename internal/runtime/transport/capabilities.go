// Package transport builds the source and destination transports of the
// bridge from the modular transport registry.
package transport

import (
	newtransport "github.com/drblury/ros2bridge/transport"
)

// Capabilities is an alias for the modular transport Capabilities.
type Capabilities = newtransport.Capabilities

// CapabilityFields renders caps as structured log fields.
func CapabilityFields(caps Capabilities) map[string]any {
	return map[string]any{
		"transport":         caps.Name,
		"ordering":          caps.SupportsOrdering,
		"ack":               caps.SupportsAck,
		"nack":              caps.SupportsNack,
		"tracing":           caps.SupportsTracing,
		"reliable_delivery": caps.SupportsReliableDelivery(),
		"max_message_bytes": caps.MaxMessageSize,
	}
}
