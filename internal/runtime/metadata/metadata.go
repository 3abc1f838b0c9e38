package metadata

// Metadata represents the headers carried alongside a bridged message.
type Metadata map[string]string

// Well-known keys stamped on outgoing messages.
const (
	KeyBridgeNode        = "bridge_node"
	KeySourceTopic       = "source_topic"
	KeySourceMessageType = "source_message_type"
	KeySourceMessageUUID = "source_message_uuid"
	KeyContentType       = "content_type"
)

// Clone returns a shallow copy of the metadata map. A nil map clones to an empty one.
func (m Metadata) Clone() Metadata {
	cloned := make(Metadata, len(m))
	for k, v := range m {
		cloned[k] = v
	}
	return cloned
}

// With returns a cloned metadata map containing the provided key/value pair.
func (m Metadata) With(key, value string) Metadata {
	cloned := m.Clone()
	cloned[key] = value
	return cloned
}

// Get returns the value stored under key, or "" when absent.
func (m Metadata) Get(key string) string {
	return m[key]
}
