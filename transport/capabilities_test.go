package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilities_PreservesOrder(t *testing.T) {
	assert.True(t, ChannelCapabilities.PreservesOrder())
	assert.True(t, KafkaCapabilities.PreservesOrder())
	assert.False(t, NATSCapabilities.PreservesOrder())
	assert.False(t, HTTPCapabilities.PreservesOrder())
}

func TestCapabilities_SupportsReliableDelivery(t *testing.T) {
	tests := []struct {
		caps Capabilities
		want bool
	}{
		{ChannelCapabilities, true},
		{RabbitMQCapabilities, true},
		{AWSCapabilities, true},
		{KafkaCapabilities, false},
		{NATSCapabilities, false},
		{HTTPCapabilities, false},
	}
	for _, tt := range tests {
		t.Run(tt.caps.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.caps.SupportsReliableDelivery())
		})
	}
}

func TestCapabilities_Fits(t *testing.T) {
	assert.True(t, HTTPCapabilities.Fits(10<<20), "zero limit means unlimited")
	assert.True(t, AWSCapabilities.Fits(256*1024))
	assert.False(t, AWSCapabilities.Fits(256*1024+1))
	assert.True(t, KafkaCapabilities.Fits(1024))
}
