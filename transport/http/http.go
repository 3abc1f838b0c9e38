// Package http provides an HTTP transport.
package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"strings"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-http/v2/pkg/http"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/ros2bridge/transport"
)

// TransportName is the name used to register this transport.
const TransportName = "http"

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(config http.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return http.NewPublisher(config, logger)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(addr string, config http.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return http.NewSubscriber(addr, config, logger)
}

func init() {
	Register()
}

// Register registers the HTTP transport with the default registry.
func Register() {
	transport.RegisterWithCapabilities(TransportName, Build, transport.HTTPCapabilities)
}

// Build creates the requested side of an HTTP transport. The publisher POSTs
// each message to the publisher URL joined with the topic. The subscriber
// serves the topic path on the server address once the topic is subscribed.
func Build(ctx context.Context, cfg transport.Config, role transport.Role, logger watermill.LoggerAdapter) (transport.Transport, error) {
	if role == transport.RolePublisher {
		publisherURL := cfg.GetHTTPPublisherURL()
		publisher, err := PublisherFactory(
			http.PublisherConfig{
				MarshalMessageFunc: func(topic string, msg *message.Message) (*nethttp.Request, error) {
					return http.DefaultMarshalMessageFunc(TopicURL(publisherURL, topic), msg)
				},
			},
			logger,
		)
		if err != nil {
			return transport.Transport{}, err
		}
		return transport.Transport{Publisher: publisher}, nil
	}

	subscriber, err := SubscriberFactory(
		cfg.GetHTTPServerAddress(),
		http.SubscriberConfig{
			UnmarshalMessageFunc: http.DefaultUnmarshalMessageFunc,
		},
		logger,
	)
	if err != nil {
		return transport.Transport{}, err
	}

	if s, ok := subscriber.(*http.Subscriber); ok {
		subscriber = &serverSubscriber{Subscriber: s, start: s.StartHTTPServer, logger: logger}
	}

	return transport.Transport{Subscriber: subscriber}, nil
}

// serverSubscriber starts the HTTP server after the first Subscribe call, so
// the topic route is registered before the server accepts requests.
type serverSubscriber struct {
	message.Subscriber

	start  func() error
	logger watermill.LoggerAdapter
	once   sync.Once
}

func (s *serverSubscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	messages, err := s.Subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	// StartHTTPServer blocks for the lifetime of the server.
	s.once.Do(func() {
		go func() {
			if err := s.start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				s.logger.Error("Failed to start HTTP subscriber server", err, nil)
			}
		}()
	})
	return messages, nil
}

// TopicURL joins the publisher base URL and a topic with exactly one slash.
func TopicURL(base, topic string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(topic, "/")
}

// Capabilities returns the capabilities of this transport.
func Capabilities() transport.Capabilities {
	return transport.HTTPCapabilities
}
