package runtime

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/drblury/ros2bridge/internal/bridge"
	"github.com/drblury/ros2bridge/internal/destination"
	"github.com/drblury/ros2bridge/internal/envelope"
	configpkg "github.com/drblury/ros2bridge/internal/runtime/config"
	errspkg "github.com/drblury/ros2bridge/internal/runtime/errors"
	loggingpkg "github.com/drblury/ros2bridge/internal/runtime/logging"
	metadatapkg "github.com/drblury/ros2bridge/internal/runtime/metadata"
	transportpkg "github.com/drblury/ros2bridge/internal/runtime/transport"
	"github.com/drblury/ros2bridge/internal/source"
	"github.com/drblury/ros2bridge/internal/topic"
	newtransport "github.com/drblury/ros2bridge/transport"
)

// ServiceDependencies holds the optional collaborators of the Service. Leave
// fields nil to use the defaults.
type ServiceDependencies struct {
	// Resolver resolves the logical topic names. Defaults to an EnvResolver
	// over Config.Topics and the process environment.
	Resolver topic.Resolver
	// TransportFactory builds the source and destination transports.
	TransportFactory transportpkg.Factory
	// MetricsRegistry receives the bridge collectors and backs /metrics.
	// Defaults to the Prometheus default registry.
	MetricsRegistry *prometheus.Registry
	// Clock stamps envelopes. Defaults to time.Now.
	Clock func() time.Time
	// NodeID overrides the generated node id.
	NodeID string
}

// Service owns the source subscription, the destination publisher and the
// bridge loop for the lifetime of the process.
type Service struct {
	Conf   *configpkg.Config
	Logger loggingpkg.ServiceLogger

	// NodeName identifies this bridge instance, e.g. /make87/make87_<id>.
	NodeName string
	// SourceTopic is the sanitized source topic name.
	SourceTopic string
	// DestinationTopic is the resolved destination topic name.
	DestinationTopic string

	source      newtransport.Transport
	destination newtransport.Transport
	decoder     source.Decoder
	publisher   *destination.Publisher
	bridge      *bridge.Bridge

	metricsGatherer prometheus.Gatherer
}

// Init validates conf, resolves the topics and builds both transports.
// Errors returned here are setup errors; no message has been consumed yet.
func Init(ctx context.Context, conf *configpkg.Config, logger loggingpkg.ServiceLogger, deps ServiceDependencies) (*Service, error) {
	if logger == nil {
		return nil, errspkg.ErrLoggerRequired
	}
	if err := configpkg.ValidateConfig(conf); err != nil {
		return nil, err
	}

	decoder, err := source.DecoderFor(conf.SourceDecoder)
	if err != nil {
		return nil, err
	}
	codec, err := envelope.CodecFor(conf.DestinationCodec)
	if err != nil {
		return nil, err
	}

	resolver := deps.Resolver
	if resolver == nil {
		envResolver, err := topic.NewEnvResolver(conf.Topics, nil)
		if err != nil {
			return nil, err
		}
		resolver = envResolver
	}

	rawSource, err := topic.Require(resolver, topic.IncomingMessage)
	if err != nil {
		return nil, err
	}
	destinationTopic, err := topic.Require(resolver, topic.OutgoingMessage)
	if err != nil {
		return nil, err
	}
	if err := topic.CheckEntry(resolver, topic.IncomingMessage, topic.TypeSubscriber, source.MessageType); err != nil {
		return nil, err
	}
	if err := topic.CheckEntry(resolver, topic.OutgoingMessage, topic.TypePublisher, ""); err != nil {
		return nil, err
	}

	s := &Service{
		Conf:             conf,
		Logger:           logger,
		NodeName:         NodeName(conf.NodeNamespace, deps.NodeID),
		SourceTopic:      topic.Sanitize(rawSource),
		DestinationTopic: destinationTopic,
		decoder:          decoder,
	}

	logger.Info("Creating ROS2 bridge service", loggingpkg.LogFields{
		"node":              s.NodeName,
		"source_topic":      s.SourceTopic,
		"source_topic_raw":  rawSource,
		"destination_topic": s.DestinationTopic,
		"config":            conf.String(),
	})

	factory := deps.TransportFactory
	if factory == nil {
		factory = transportpkg.DefaultFactory()
	}
	if err := s.buildTransports(ctx, factory); err != nil {
		return nil, err
	}

	publisher, err := destination.NewPublisher(s.destination.Publisher, s.DestinationTopic, codec, metadatapkg.Metadata{
		metadatapkg.KeyBridgeNode:        s.NodeName,
		metadatapkg.KeySourceTopic:       s.SourceTopic,
		metadatapkg.KeySourceMessageType: source.MessageType,
	}, destination.WithCapabilities(factory.Capabilities(conf.Destination.PubSubSystem)))
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.publisher = publisher

	opts := []bridge.Option{
		bridge.WithTopic(s.DestinationTopic),
		bridge.WithClock(deps.Clock),
	}
	if conf.MetricsEnabled {
		registry := deps.MetricsRegistry
		var registerer prometheus.Registerer = prometheus.DefaultRegisterer
		s.metricsGatherer = prometheus.DefaultGatherer
		if registry != nil {
			registerer = registry
			s.metricsGatherer = registry
		}
		metrics := bridge.NewMetrics(registerer)
		if err := metrics.Register(); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, bridge.WithMetrics(metrics))
	}

	b, err := bridge.New(s.publisher, logger, opts...)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.bridge = b

	return s, nil
}

func (s *Service) buildTransports(ctx context.Context, factory transportpkg.Factory) error {
	wmLogger := loggingpkg.NewWatermillAdapter(s.Logger)

	src, err := factory.Build(ctx, &s.Conf.Source, newtransport.RoleSubscriber, wmLogger)
	if err != nil {
		return fmt.Errorf("build source transport %q: %w", s.Conf.Source.PubSubSystem, err)
	}
	if src.Subscriber == nil {
		_ = src.Close()
		return errspkg.ErrSubscriberRequired
	}
	s.source = src

	dst, err := factory.Build(ctx, &s.Conf.Destination, newtransport.RolePublisher, wmLogger)
	if err != nil {
		_ = s.source.Close()
		return fmt.Errorf("build destination transport %q: %w", s.Conf.Destination.PubSubSystem, err)
	}
	if dst.Publisher == nil {
		_ = s.source.Close()
		_ = dst.Close()
		return errspkg.ErrPublisherRequired
	}
	s.destination = dst

	s.logCapabilities(factory)
	return nil
}

func (s *Service) logCapabilities(factory transportpkg.Factory) {
	sides := []struct {
		name   string
		system string
	}{
		{"source", s.Conf.Source.PubSubSystem},
		{"destination", s.Conf.Destination.PubSubSystem},
	}
	for _, side := range sides {
		caps := factory.Capabilities(side.system)
		fields := loggingpkg.LogFields(transportpkg.CapabilityFields(caps))
		fields["side"] = side.name
		s.Logger.Info("Transport capabilities", fields)
		if !caps.PreservesOrder() {
			s.Logger.Info("Transport does not guarantee ordering; relay order follows delivery order", loggingpkg.LogFields{
				"side":      side.name,
				"transport": caps.Name,
			})
		}
	}
}

// Run subscribes to the source topic and relays messages until the source
// stream ends, which happens when ctx is cancelled or the source subscriber
// is closed. It returns an error only when the subscription cannot be
// established. The metrics server, when enabled, keeps serving until ctx is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s == nil || s.bridge == nil {
		return errors.New("ros2bridge: service is not initialised")
	}

	if s.Conf.MetricsEnabled {
		server := newMetricsServer(s.Conf.MetricsPort, s.metricsGatherer, s.Logger)
		if err := server.Start(ctx); err != nil {
			return err
		}
	}

	stream, err := source.Subscribe(ctx, s.source.Subscriber, s.SourceTopic, s.decoder)
	if err != nil {
		return err
	}

	s.bridge.Run(ctx, stream)
	return nil
}

// Close closes both transports.
func (s *Service) Close() error {
	return errors.Join(s.source.Close(), s.destination.Close())
}

// Idle blocks until ctx is cancelled. It keeps the process alive after the
// source stream ended so the platform does not treat the bridge as crashed.
func Idle(ctx context.Context) {
	<-ctx.Done()
}
