package ros2bridge

import (
	runtimepkg "github.com/drblury/ros2bridge/internal/runtime"
	configpkg "github.com/drblury/ros2bridge/internal/runtime/config"
	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
	idspkg "github.com/drblury/ros2bridge/internal/runtime/ids"
	loggingpkg "github.com/drblury/ros2bridge/internal/runtime/logging"
	metadatapkg "github.com/drblury/ros2bridge/internal/runtime/metadata"
	transportpkg "github.com/drblury/ros2bridge/internal/runtime/transport"

	"github.com/drblury/ros2bridge/internal/envelope"
	"github.com/drblury/ros2bridge/internal/source"
	"github.com/drblury/ros2bridge/internal/topic"
	newtransport "github.com/drblury/ros2bridge/transport"
)

type (
	Config                = configpkg.Config
	TransportSettings     = configpkg.TransportConfig
	Service               = runtimepkg.Service
	ServiceDependencies   = runtimepkg.ServiceDependencies
	TransportFactory      = transportpkg.Factory
	ConfigValidationError = errspkg.ConfigValidationError

	Metadata = metadatapkg.Metadata

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	Envelope       = envelope.Envelope
	EnvelopeHeader = envelope.Header
	Codec          = envelope.Codec

	IncomingMessage = source.Message
	Decoder         = source.Decoder

	TopicResolver  = topic.Resolver
	StaticResolver = topic.StaticResolver
	EnvResolver    = topic.EnvResolver
	TopicDocument  = topic.Document
	TopicEntry     = topic.Entry

	// Transport capabilities
	Capabilities = transportpkg.Capabilities

	// Modular transport types
	Transport         = newtransport.Transport
	TransportBuilder  = newtransport.Builder
	TransportConfig   = newtransport.Config
	TransportRegistry = newtransport.Registry
	TransportRole     = newtransport.Role
)

var (
	Init     = runtimepkg.Init
	Idle     = runtimepkg.Idle
	NodeName = runtimepkg.NodeName

	LoadConfig     = configpkg.Load
	LoadConfigFrom = configpkg.LoadFrom
	ValidateConfig = configpkg.ValidateConfig

	Sanitize       = topic.Sanitize
	Checksum       = topic.Checksum
	ParseTopics    = topic.ParseDocument
	NewEnvResolver = topic.NewEnvResolver

	NewEnvelope = envelope.New
	CodecFor    = envelope.CodecFor
	DecoderFor  = source.DecoderFor

	// Transport capabilities
	GetCapabilities = newtransport.GetCapabilities

	// Modular transport registry.
	// Import individual transports via: _ "github.com/drblury/ros2bridge/transport/kafka"
	DefaultTransportRegistry = newtransport.DefaultRegistry
	RegisterTransport        = newtransport.RegisterWithCapabilities
	BuildTransport           = newtransport.Build

	ErrConfigRequired     = errspkg.ErrConfigRequired
	ErrLoggerRequired     = errspkg.ErrLoggerRequired
	ErrResolverRequired   = errspkg.ErrResolverRequired
	ErrTopicNotFound      = errspkg.ErrTopicNotFound
	ErrTopicRequired      = errspkg.ErrTopicRequired
	ErrPublisherRequired  = errspkg.ErrPublisherRequired
	ErrSubscriberRequired = errspkg.ErrSubscriberRequired
	ErrEmptyPayload       = errspkg.ErrEmptyPayload
	ErrUnknownCodec       = errspkg.ErrUnknownCodec
	ErrUnknownDecoder     = errspkg.ErrUnknownDecoder
	ErrMessageTooLarge    = errspkg.ErrMessageTooLarge
	ErrTopicMismatch      = errspkg.ErrTopicMismatch

	NewLogger                 = loggingpkg.New
	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger

	NewMessageID = idspkg.NewMessageID
)

// Logical topic names resolved at startup.
const (
	TopicIncomingMessage = topic.IncomingMessage
	TopicOutgoingMessage = topic.OutgoingMessage
)

// Transport roles passed to TransportBuilder.
const (
	RoleSubscriber = newtransport.RoleSubscriber
	RolePublisher  = newtransport.RolePublisher
)

// Metadata keys set on every outgoing message.
const (
	MetadataKeyBridgeNode        = metadatapkg.KeyBridgeNode
	MetadataKeySourceTopic       = metadatapkg.KeySourceTopic
	MetadataKeySourceMessageType = metadatapkg.KeySourceMessageType
	MetadataKeySourceMessageUUID = metadatapkg.KeySourceMessageUUID
	MetadataKeyContentType       = metadatapkg.KeyContentType
)
