package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
)

func TestROSStringDecoder(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr string
	}{
		{name: "plain", payload: `{"data":"hello"}`, want: "hello"},
		{name: "empty data", payload: `{"data":""}`, want: ""},
		{name: "unicode", payload: `{"data":"grüß dich"}`, want: "grüß dich"},
		{name: "missing field", payload: `{"text":"hello"}`, wantErr: "missing data field"},
		{name: "not json", payload: `hello`, wantErr: "decode std_msgs/String"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ROSStringDecoder{}.Decode([]byte(tt.payload))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestROSStringDecoder_EmptyPayload(t *testing.T) {
	_, err := ROSStringDecoder{}.Decode(nil)
	assert.ErrorIs(t, err, errspkg.ErrEmptyPayload)
}

func TestTextDecoder(t *testing.T) {
	got, err := TextDecoder{}.Decode([]byte(`{"data":"kept verbatim"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"data":"kept verbatim"}`, got)
}

func TestDecoderFor(t *testing.T) {
	d, err := DecoderFor("ros-string")
	require.NoError(t, err)
	assert.Equal(t, DecoderROSString, d.Name())

	d, err = DecoderFor("text")
	require.NoError(t, err)
	assert.Equal(t, DecoderText, d.Name())

	_, err = DecoderFor("cdr")
	assert.ErrorIs(t, err, errspkg.ErrUnknownDecoder)
}
