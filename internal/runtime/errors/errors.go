package errors

import (
	sterrors "errors"
	"fmt"
)

var (
	ErrConfigRequired     = sterrors.New("ros2bridge: config is required")
	ErrLoggerRequired     = sterrors.New("ros2bridge: logger is required")
	ErrResolverRequired   = sterrors.New("ros2bridge: topic resolver is required")
	ErrTopicNotFound      = sterrors.New("ros2bridge: topic name not found")
	ErrTopicRequired      = sterrors.New("ros2bridge: topic is required")
	ErrPublisherRequired  = sterrors.New("ros2bridge: publisher is required")
	ErrSubscriberRequired = sterrors.New("ros2bridge: subscriber is required")
	ErrEmptyPayload       = sterrors.New("ros2bridge: message payload is empty")
	ErrUnknownCodec       = sterrors.New("ros2bridge: unknown envelope codec")
	ErrUnknownDecoder     = sterrors.New("ros2bridge: unknown source decoder")
	ErrMessageTooLarge    = sterrors.New("ros2bridge: message exceeds transport size limit")
	ErrTopicMismatch      = sterrors.New("ros2bridge: topic declared with unexpected type")
)

// ConfigValidationError reports every problem found while validating a Config.
type ConfigValidationError struct {
	Err error
}

func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("ros2bridge: invalid config: %v", e.Err)
}

func (e *ConfigValidationError) Unwrap() error {
	return e.Err
}
