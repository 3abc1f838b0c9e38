package topic

import (
	"fmt"
	"os"
	"strings"

	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
	"github.com/drblury/ros2bridge/internal/runtime/jsoncodec"
)

// Logical names the bridge resolves at startup.
const (
	IncomingMessage = "INCOMING_MESSAGE"
	OutgoingMessage = "OUTGOING_MESSAGE"
)

// Topic directions used in the topic document.
const (
	TypeSubscriber = "SUB"
	TypePublisher  = "PUB"
)

// Resolver maps a logical topic name to a concrete one.
type Resolver interface {
	Resolve(name string) (string, bool)
}

// Require resolves name and reports ErrTopicNotFound when it is missing or empty.
func Require(r Resolver, name string) (string, error) {
	if r == nil {
		return "", errspkg.ErrResolverRequired
	}
	resolved, ok := r.Resolve(name)
	if !ok || resolved == "" {
		return "", fmt.Errorf("%w: %s", errspkg.ErrTopicNotFound, name)
	}
	return resolved, nil
}

// EntryResolver is a Resolver that also knows the declared direction and
// message type of a topic.
type EntryResolver interface {
	Resolver
	Entry(name string) (Entry, bool)
}

// CheckEntry verifies the declaration of name when r carries one. An empty
// field in the declaration, or an empty messageType, is not checked.
func CheckEntry(r Resolver, name, topicType, messageType string) error {
	er, ok := r.(EntryResolver)
	if !ok {
		return nil
	}
	entry, ok := er.Entry(name)
	if !ok {
		return nil
	}
	if entry.TopicType != "" && !strings.EqualFold(entry.TopicType, topicType) {
		return fmt.Errorf("%w: %s is %q, want %q", errspkg.ErrTopicMismatch, name, entry.TopicType, topicType)
	}
	if messageType != "" && entry.MessageType != "" && entry.MessageType != messageType {
		return fmt.Errorf("%w: %s carries %q, want %q", errspkg.ErrTopicMismatch, name, entry.MessageType, messageType)
	}
	return nil
}

// StaticResolver resolves from a fixed map.
type StaticResolver map[string]string

func (s StaticResolver) Resolve(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// Document is the topic document handed to the bridge by the platform, e.g.
//
//	{"topics":[{"topic_key":"INCOMING_MESSAGE","topic_name":"robot/status","topic_type":"SUB","message_type":"std_msgs/String"}]}
type Document struct {
	Topics []Entry `json:"topics"`
}

// Entry is one topic of a Document.
type Entry struct {
	TopicKey    string `json:"topic_key"`
	TopicName   string `json:"topic_name"`
	TopicType   string `json:"topic_type,omitempty"`
	MessageType string `json:"message_type,omitempty"`
}

// ParseDocument decodes a topic document. A blank document has no topics.
func ParseDocument(raw string) (Document, error) {
	var doc Document
	if strings.TrimSpace(raw) == "" {
		return doc, nil
	}
	if err := jsoncodec.UnmarshalFromString(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parse topic document: %w", err)
	}
	for i, entry := range doc.Topics {
		if entry.TopicKey == "" {
			return Document{}, fmt.Errorf("parse topic document: topic %d has no topic_key", i)
		}
	}
	return doc, nil
}

// Lookup returns the entry registered under key.
func (d Document) Lookup(key string) (Entry, bool) {
	for _, entry := range d.Topics {
		if entry.TopicKey == key {
			return entry, true
		}
	}
	return Entry{}, false
}

// EnvResolver resolves names from a topic document, falling back to an
// environment variable named after the logical name.
type EnvResolver struct {
	doc       Document
	lookupEnv func(string) (string, bool)
}

// NewEnvResolver parses document and resolves missing names through
// lookupEnv. A nil lookupEnv uses the process environment.
func NewEnvResolver(document string, lookupEnv func(string) (string, bool)) (*EnvResolver, error) {
	doc, err := ParseDocument(document)
	if err != nil {
		return nil, err
	}
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &EnvResolver{doc: doc, lookupEnv: lookupEnv}, nil
}

func (r *EnvResolver) Resolve(name string) (string, bool) {
	if entry, ok := r.doc.Lookup(name); ok && entry.TopicName != "" {
		return entry.TopicName, true
	}
	value, ok := r.lookupEnv(name)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Entry returns the document entry for name, if the document has one.
func (r *EnvResolver) Entry(name string) (Entry, bool) {
	return r.doc.Lookup(name)
}
