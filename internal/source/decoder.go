package source

import (
	"fmt"

	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
	"github.com/drblury/ros2bridge/internal/runtime/jsoncodec"
)

// Decoder names accepted by DecoderFor.
const (
	DecoderROSString = "ros-string"
	DecoderText      = "text"
)

// Decoder extracts the message body from a transport payload.
type Decoder interface {
	Name() string
	Decode(payload []byte) (string, error)
}

// DecoderFor returns the decoder registered under name.
func DecoderFor(name string) (Decoder, error) {
	switch name {
	case DecoderROSString:
		return ROSStringDecoder{}, nil
	case DecoderText:
		return TextDecoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errspkg.ErrUnknownDecoder, name)
	}
}

// ROSStringDecoder reads the JSON form of a std_msgs/String, {"data": "..."}.
type ROSStringDecoder struct{}

type rosString struct {
	Data *string `json:"data"`
}

func (ROSStringDecoder) Name() string { return DecoderROSString }

func (ROSStringDecoder) Decode(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", errspkg.ErrEmptyPayload
	}
	var msg rosString
	if err := jsoncodec.Unmarshal(payload, &msg); err != nil {
		return "", fmt.Errorf("decode %s: %w", MessageType, err)
	}
	if msg.Data == nil {
		return "", fmt.Errorf("decode %s: missing data field", MessageType)
	}
	return *msg.Data, nil
}

// TextDecoder uses the payload bytes as the body.
type TextDecoder struct{}

func (TextDecoder) Name() string { return DecoderText }

func (TextDecoder) Decode(payload []byte) (string, error) {
	return string(payload), nil
}
