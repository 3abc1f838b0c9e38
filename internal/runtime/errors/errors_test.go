package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrConfigRequired", ErrConfigRequired, "ros2bridge: config is required"},
		{"ErrLoggerRequired", ErrLoggerRequired, "ros2bridge: logger is required"},
		{"ErrResolverRequired", ErrResolverRequired, "ros2bridge: topic resolver is required"},
		{"ErrTopicNotFound", ErrTopicNotFound, "ros2bridge: topic name not found"},
		{"ErrTopicRequired", ErrTopicRequired, "ros2bridge: topic is required"},
		{"ErrPublisherRequired", ErrPublisherRequired, "ros2bridge: publisher is required"},
		{"ErrSubscriberRequired", ErrSubscriberRequired, "ros2bridge: subscriber is required"},
		{"ErrEmptyPayload", ErrEmptyPayload, "ros2bridge: message payload is empty"},
		{"ErrUnknownCodec", ErrUnknownCodec, "ros2bridge: unknown envelope codec"},
		{"ErrUnknownDecoder", ErrUnknownDecoder, "ros2bridge: unknown source decoder"},
		{"ErrMessageTooLarge", ErrMessageTooLarge, "ros2bridge: message exceeds transport size limit"},
		{"ErrTopicMismatch", ErrTopicMismatch, "ros2bridge: topic declared with unexpected type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestConfigValidationError(t *testing.T) {
	inner := errors.New("invalid port")
	err := &ConfigValidationError{Err: inner}

	want := "ros2bridge: invalid config: invalid port"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if unwrapped := err.Unwrap(); unwrapped != inner {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, inner)
	}

	wrapped := fmt.Errorf("init: %w", err)
	var target *ConfigValidationError
	if !errors.As(wrapped, &target) {
		t.Fatal("expected errors.As to find ConfigValidationError")
	}
	if !errors.Is(wrapped, inner) {
		t.Error("expected errors.Is to reach the inner error")
	}
}

func TestWrappedTopicNotFound(t *testing.T) {
	err := fmt.Errorf("resolve %q: %w", "INCOMING_MESSAGE", ErrTopicNotFound)
	if !errors.Is(err, ErrTopicNotFound) {
		t.Fatal("expected wrapped error to match ErrTopicNotFound")
	}
}
