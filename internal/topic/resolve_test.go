package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
)

const sampleDocument = `{"topics":[
	{"topic_key":"INCOMING_MESSAGE","topic_name":"robot/status","topic_type":"SUB","message_type":"std_msgs/String"},
	{"topic_key":"OUTGOING_MESSAGE","topic_name":"plain_text_out","topic_type":"PUB","message_type":"make87_messages.text.PlainText"}
]}`

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument(sampleDocument)
	require.NoError(t, err)
	require.Len(t, doc.Topics, 2)

	entry, ok := doc.Lookup(IncomingMessage)
	require.True(t, ok)
	assert.Equal(t, "robot/status", entry.TopicName)
	assert.Equal(t, TypeSubscriber, entry.TopicType)
	assert.Equal(t, "std_msgs/String", entry.MessageType)

	_, ok = doc.Lookup("MISSING")
	assert.False(t, ok)
}

func TestParseDocument_Errors(t *testing.T) {
	_, err := ParseDocument(`{"topics":`)
	assert.ErrorContains(t, err, "parse topic document")

	_, err = ParseDocument(`{"topics":[{"topic_name":"x"}]}`)
	assert.ErrorContains(t, err, "no topic_key")
}

func TestParseDocument_Blank(t *testing.T) {
	doc, err := ParseDocument("  ")
	require.NoError(t, err)
	assert.Empty(t, doc.Topics)
}

func TestEnvResolver(t *testing.T) {
	resolver, err := NewEnvResolver(sampleDocument, envFrom(map[string]string{
		OutgoingMessage: "ignored_because_document_wins",
		"EXTRA_TOPIC":   "from_env",
		"EMPTY_TOPIC":   "",
	}))
	require.NoError(t, err)

	name, ok := resolver.Resolve(IncomingMessage)
	assert.True(t, ok)
	assert.Equal(t, "robot/status", name)

	name, ok = resolver.Resolve(OutgoingMessage)
	assert.True(t, ok)
	assert.Equal(t, "plain_text_out", name)

	name, ok = resolver.Resolve("EXTRA_TOPIC")
	assert.True(t, ok)
	assert.Equal(t, "from_env", name)

	_, ok = resolver.Resolve("EMPTY_TOPIC")
	assert.False(t, ok)

	_, ok = resolver.Resolve("UNKNOWN")
	assert.False(t, ok)

	entry, ok := resolver.Entry(OutgoingMessage)
	assert.True(t, ok)
	assert.Equal(t, TypePublisher, entry.TopicType)
}

func TestNewEnvResolver_InvalidDocument(t *testing.T) {
	_, err := NewEnvResolver("not json", nil)
	assert.Error(t, err)
}

func TestCheckEntry(t *testing.T) {
	resolver, err := NewEnvResolver(sampleDocument, envFrom(map[string]string{"EXTRA_TOPIC": "from_env"}))
	require.NoError(t, err)

	assert.NoError(t, CheckEntry(resolver, IncomingMessage, TypeSubscriber, "std_msgs/String"))
	assert.NoError(t, CheckEntry(resolver, OutgoingMessage, TypePublisher, ""))
	assert.NoError(t, CheckEntry(resolver, "EXTRA_TOPIC", TypeSubscriber, "std_msgs/String"), "env-only names carry no declaration")

	err = CheckEntry(resolver, IncomingMessage, TypePublisher, "")
	assert.ErrorIs(t, err, errspkg.ErrTopicMismatch)
	assert.ErrorContains(t, err, IncomingMessage)

	err = CheckEntry(resolver, IncomingMessage, TypeSubscriber, "sensor_msgs/Image")
	assert.ErrorIs(t, err, errspkg.ErrTopicMismatch)

	assert.NoError(t, CheckEntry(StaticResolver{IncomingMessage: "x"}, IncomingMessage, TypePublisher, ""), "resolvers without declarations are not checked")
}

func TestRequire(t *testing.T) {
	resolver := StaticResolver{IncomingMessage: "robot/status", "BLANK": ""}

	name, err := Require(resolver, IncomingMessage)
	require.NoError(t, err)
	assert.Equal(t, "robot/status", name)

	_, err = Require(resolver, OutgoingMessage)
	assert.ErrorIs(t, err, errspkg.ErrTopicNotFound)
	assert.ErrorContains(t, err, OutgoingMessage)

	_, err = Require(resolver, "BLANK")
	assert.ErrorIs(t, err, errspkg.ErrTopicNotFound)

	_, err = Require(nil, IncomingMessage)
	assert.ErrorIs(t, err, errspkg.ErrResolverRequired)
}
