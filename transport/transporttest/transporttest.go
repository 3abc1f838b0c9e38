// Package transporttest provides fakes for exercising transport builders
// without a running broker.
package transporttest

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Config is a settable implementation of transport.Config.
type Config struct {
	PubSubSystem       string
	KafkaBrokers       []string
	KafkaConsumerGroup string
	RabbitMQURL        string
	NATSURL            string
	HTTPServerAddress  string
	HTTPPublisherURL   string
	AWSRegion          string
	AWSAccountID       string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
}

func (c *Config) GetPubSubSystem() string       { return c.PubSubSystem }
func (c *Config) GetKafkaBrokers() []string     { return c.KafkaBrokers }
func (c *Config) GetKafkaConsumerGroup() string { return c.KafkaConsumerGroup }
func (c *Config) GetRabbitMQURL() string        { return c.RabbitMQURL }
func (c *Config) GetNATSURL() string            { return c.NATSURL }
func (c *Config) GetHTTPServerAddress() string  { return c.HTTPServerAddress }
func (c *Config) GetHTTPPublisherURL() string   { return c.HTTPPublisherURL }
func (c *Config) GetAWSRegion() string          { return c.AWSRegion }
func (c *Config) GetAWSAccountID() string       { return c.AWSAccountID }
func (c *Config) GetAWSAccessKeyID() string     { return c.AWSAccessKeyID }
func (c *Config) GetAWSSecretAccessKey() string { return c.AWSSecretAccessKey }
func (c *Config) GetAWSEndpoint() string        { return c.AWSEndpoint }

// Publisher records every published message. PublishFunc, when set, decides
// the result of each call.
type Publisher struct {
	mu          sync.Mutex
	Published   []Published
	PublishFunc func(topic string, msg *message.Message) error
	Closed      bool
}

// Published is one recorded Publish call.
type Published struct {
	Topic   string
	Message *message.Message
}

func (p *Publisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, msg := range messages {
		if p.PublishFunc != nil {
			if err := p.PublishFunc(topic, msg); err != nil {
				return err
			}
		}
		p.Published = append(p.Published, Published{Topic: topic, Message: msg})
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return nil
}

// Messages returns a copy of the recorded publishes.
func (p *Publisher) Messages() []Published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Published(nil), p.Published...)
}

// Subscriber hands out Messages as the stream for any topic.
type Subscriber struct {
	Messages chan *message.Message
	Topics   []string
	Closed   bool
}

func (s *Subscriber) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	s.Topics = append(s.Topics, topic)
	if s.Messages == nil {
		s.Messages = make(chan *message.Message)
	}
	return s.Messages, nil
}

func (s *Subscriber) Close() error {
	s.Closed = true
	return nil
}
