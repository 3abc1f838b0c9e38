package envelope

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
	"github.com/drblury/ros2bridge/internal/runtime/jsoncodec"
)

// Codec names accepted by CodecFor.
const (
	CodecJSON  = "json"
	CodecProto = "proto"
)

// Codec converts envelopes to and from message payloads.
type Codec interface {
	Name() string
	ContentType() string
	Encode(Envelope) ([]byte, error)
	Decode([]byte) (Envelope, error)
}

// CodecFor returns the codec registered under name.
func CodecFor(name string) (Codec, error) {
	switch name {
	case CodecJSON:
		return JSONCodec{}, nil
	case CodecProto:
		return ProtoCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errspkg.ErrUnknownCodec, name)
	}
}

// JSONCodec encodes envelopes as JSON objects.
type JSONCodec struct{}

func (JSONCodec) Name() string        { return CodecJSON }
func (JSONCodec) ContentType() string { return "application/json" }

func (JSONCodec) Encode(e Envelope) ([]byte, error) {
	return jsoncodec.Marshal(e)
}

func (JSONCodec) Decode(payload []byte) (Envelope, error) {
	var e Envelope
	if err := jsoncodec.Unmarshal(payload, &e); err != nil {
		return Envelope{}, fmt.Errorf("decode json envelope: %w", err)
	}
	return e, nil
}

// ProtoCodec encodes envelopes as a google.protobuf.Struct with the same
// field names as the JSON form. The timestamp is the RFC 3339 rendering of a
// google.protobuf.Timestamp.
type ProtoCodec struct{}

func (ProtoCodec) Name() string        { return CodecProto }
func (ProtoCodec) ContentType() string { return "application/protobuf" }

func (ProtoCodec) Encode(e Envelope) ([]byte, error) {
	ts := timestamppb.New(e.Header.Timestamp)
	if err := ts.CheckValid(); err != nil {
		return nil, fmt.Errorf("encode proto envelope: %w", err)
	}

	s, err := structpb.NewStruct(map[string]any{
		"header": map[string]any{
			"timestamp":    ts.AsTime().Format(time.RFC3339Nano),
			"reference_id": e.Header.ReferenceID,
			"entity_path":  e.Header.EntityPath,
		},
		"body": e.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("encode proto envelope: %w", err)
	}
	return proto.Marshal(s)
}

func (ProtoCodec) Decode(payload []byte) (Envelope, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(payload, &s); err != nil {
		return Envelope{}, fmt.Errorf("decode proto envelope: %w", err)
	}

	header := s.GetFields()["header"].GetStructValue().GetFields()
	var ts time.Time
	if raw := header["timestamp"].GetStringValue(); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Envelope{}, fmt.Errorf("decode proto envelope timestamp: %w", err)
		}
		ts = parsed
	}

	return Envelope{
		Header: Header{
			Timestamp:   ts,
			ReferenceID: uint64(header["reference_id"].GetNumberValue()),
			EntityPath:  header["entity_path"].GetStringValue(),
		},
		Body: s.GetFields()["body"].GetStringValue(),
	}, nil
}
