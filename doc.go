// Package ros2bridge relays string messages from a ROS2-style source bus to a
// make87 destination topic. It subscribes to one source topic, wraps every
// received body in an envelope (timestamp, reference id, entity path) and
// publishes it on one destination topic. Both sides are Watermill pub/subs
// selected from Config, so the process never speaks the two protocols at once.
//
// A bridge process goes through three phases. Init validates the Config,
// resolves the INCOMING_MESSAGE and OUTGOING_MESSAGE topic names, sanitizes
// the source name and builds both transports. Run drives the relay loop until
// the source stream ends. Idle keeps the process alive until the shutdown
// signal cancels the context.
//
// # Transports
//
// Each side picks one of the registered transports:
//   - channel: In-memory Go channels for testing
//   - kafka: High-throughput streaming with consumer groups
//   - rabbitmq: AMQP-based durable queues
//   - aws: AWS SNS/SQS with LocalStack support
//   - nats: Core NATS messaging
//   - http: Webhook-style delivery
//
// # Topic names
//
// Sanitize maps any string to a name the source bus accepts: the "ros2_"
// prefix, the input with every character outside [A-Za-z0-9_] replaced by
// "_", and a decimal checksum of the raw input. The result never exceeds
// 256 bytes. Distinct inputs can map to the same name.
//
// # Failure handling
//
// A message that cannot be decoded or published is logged, counted and
// dropped. The loop never retries and never stops on a per-message error.
// Setup errors are returned from Init or Run before any message is consumed.
package ros2bridge
