// Package transports imports all built-in transports for auto-registration.
// Import this package to have all transports registered with the default registry.
package transports

import (
	_ "github.com/drblury/ros2bridge/transport/aws"
	_ "github.com/drblury/ros2bridge/transport/channel"
	_ "github.com/drblury/ros2bridge/transport/http"
	_ "github.com/drblury/ros2bridge/transport/kafka"
	_ "github.com/drblury/ros2bridge/transport/nats"
	_ "github.com/drblury/ros2bridge/transport/rabbitmq"
)
