// Package aws provides an AWS SNS/SQS transport. Publishing goes to an SNS
// topic; subscribing creates an SQS queue named after the topic and
// subscribes it to the SNS topic.
package aws

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-aws/sns"
	"github.com/ThreeDotsLabs/watermill-aws/sqs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	amazonsns "github.com/aws/aws-sdk-go-v2/service/sns"
	amazonsqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	smithyendpoints "github.com/aws/smithy-go/endpoints"

	"github.com/drblury/ros2bridge/transport"
)

// TransportName is the name used to register this transport.
const TransportName = "aws"

const (
	localstackAccountID = "000000000000"
	awsAccountIDLength  = 12
)

// DefaultConfigLoader allows overriding the AWS config loader for testing.
var DefaultConfigLoader = awsconfig.LoadDefaultConfig

// TopicResolverFactory allows overriding the topic resolver creation for testing.
var TopicResolverFactory = sns.NewGenerateArnTopicResolver

// PublisherFactory allows overriding the publisher creation for testing.
var PublisherFactory = func(cfg sns.PublisherConfig, logger watermill.LoggerAdapter) (message.Publisher, error) {
	return sns.NewPublisher(cfg, logger)
}

// SubscriberFactory allows overriding the subscriber creation for testing.
var SubscriberFactory = func(cfg sns.SubscriberConfig, sqsCfg sqs.SubscriberConfig, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	return sns.NewSubscriber(cfg, sqsCfg, logger)
}

func init() {
	Register()
}

// Register registers the AWS transport with the default registry.
func Register() {
	transport.RegisterWithCapabilities(TransportName, Build, transport.AWSCapabilities)
}

// Build creates the requested side of an SNS/SQS transport.
func Build(ctx context.Context, cfg transport.Config, role transport.Role, logger watermill.LoggerAdapter) (transport.Transport, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg, logger)
	if err != nil {
		return transport.Transport{}, err
	}

	endpoint, err := endpointURL(cfg)
	if err != nil {
		return transport.Transport{}, err
	}

	accountID, region := resolveAccountAndRegion(cfg, logger, awsCfg.Region)
	topicResolver, err := TopicResolverFactory(accountID, region)
	if err != nil {
		logger.Error("Failed to create SNS topic resolver", err, watermill.LogFields{
			"account_id": accountID,
			"region":     region,
		})
		return transport.Transport{}, err
	}

	logger.Info("Created AWS config", watermill.LogFields{
		"role":            role.String(),
		"region":          region,
		"custom_endpoint": endpoint != nil,
	})

	if role == transport.RolePublisher {
		publisher, err := PublisherFactory(sns.PublisherConfig{
			TopicResolver: topicResolver,
			AWSConfig:     awsCfg,
			OptFns:        snsOptions(endpoint),
			Marshaler:     sns.DefaultMarshalerUnmarshaler{},
		}, logger)
		if err != nil {
			return transport.Transport{}, err
		}
		return transport.Transport{Publisher: publisher}, nil
	}

	subscriber, err := SubscriberFactory(
		sns.SubscriberConfig{
			AWSConfig:            awsCfg,
			OptFns:               snsOptions(endpoint),
			TopicResolver:        topicResolver,
			GenerateSqsQueueName: queueNameFromTopicArn,
		},
		sqs.SubscriberConfig{
			AWSConfig: awsCfg,
			OptFns:    sqsOptions(endpoint),
		},
		logger,
	)
	if err != nil {
		return transport.Transport{}, err
	}
	return transport.Transport{Subscriber: subscriber}, nil
}

// Capabilities returns the capabilities of this transport.
func Capabilities() transport.Capabilities {
	return transport.AWSCapabilities
}

func loadAWSConfig(ctx context.Context, cfg transport.Config, logger watermill.LoggerAdapter) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error

	region := cfg.GetAWSRegion()
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	accessKey, secretKey := cfg.GetAWSAccessKeyID(), cfg.GetAWSSecretAccessKey()
	if accessKey != "" && secretKey != "" {
		logger.Debug("Using static AWS credentials from config", nil)
		opts = append(opts, awsconfig.WithCredentialsProvider(staticCredentialsProvider(accessKey, secretKey)))
	}

	awsCfg, err := DefaultConfigLoader(ctx, opts...)
	if err != nil {
		logger.Error("Failed to load AWS default config", err, watermill.LogFields{"requested_region": region})
		return aws.Config{}, err
	}

	if region != "" {
		awsCfg.Region = region
	}
	return awsCfg, nil
}

func queueNameFromTopicArn(ctx context.Context, snsTopic sns.TopicArn) (string, error) {
	topic, err := sns.ExtractTopicNameFromTopicArn(snsTopic)
	if err != nil {
		return "", err
	}
	return string(topic), nil
}

// resolveAccountAndRegion falls back to the LocalStack account id when a
// custom endpoint is configured without a valid account id.
func resolveAccountAndRegion(cfg transport.Config, logger watermill.LoggerAdapter, fallbackRegion string) (string, string) {
	accountID := strings.Trim(cfg.GetAWSAccountID(), "\"' ")
	region := cfg.GetAWSRegion()
	if region == "" {
		region = fallbackRegion
	}

	if cfg.GetAWSEndpoint() != "" && len(accountID) != awsAccountIDLength {
		logger.Info("Using LocalStack default account id", watermill.LogFields{"configured_account_id": accountID})
		accountID = localstackAccountID
	}

	return accountID, region
}

func endpointURL(cfg transport.Config) (*url.URL, error) {
	if cfg.GetAWSEndpoint() == "" {
		return nil, nil
	}

	parsed, err := url.Parse(cfg.GetAWSEndpoint())
	if err != nil {
		return nil, fmt.Errorf("parse AWS endpoint: %w", err)
	}
	return parsed, nil
}

func snsOptions(endpoint *url.URL) []func(*amazonsns.Options) {
	if endpoint == nil {
		return nil
	}
	return []func(*amazonsns.Options){
		amazonsns.WithEndpointResolverV2(sns.OverrideEndpointResolver{
			Endpoint: smithyendpoints.Endpoint{URI: *endpoint},
		}),
	}
}

func sqsOptions(endpoint *url.URL) []func(*amazonsqs.Options) {
	if endpoint == nil {
		return nil
	}
	return []func(*amazonsqs.Options){
		amazonsqs.WithEndpointResolverV2(sqs.OverrideEndpointResolver{
			Endpoint: smithyendpoints.Endpoint{URI: *endpoint},
		}),
	}
}

func staticCredentialsProvider(accessKeyID, secretAccessKey string) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     accessKeyID,
			SecretAccessKey: secretAccessKey,
		}, nil
	})
}
