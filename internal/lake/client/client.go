package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/middleware"
)

// NewAWSConfig loads the AWS configuration shared by the S3, Glue and
// DynamoDB adapters. A non-empty endpointURL points every service client at
// that endpoint with static test credentials, which is how local stacks
// (minio, localstack) are wired in development.
func NewAWSConfig(ctx context.Context, endpointURL, awsRegion string) (aws.Config, error) {
	mw := middleware.NewMiddleware()

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(awsRegion),
	}
	if endpointURL != "" {
		opts = append(opts,
			config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
				func(service string, region string, options ...interface{}) (aws.Endpoint, error) {
					return aws.Endpoint{URL: endpointURL}, nil
				})),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
		)
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		mw.LogError("Unable to create connection config", err)
		return aws.Config{}, err
	}
	return cfg, nil
}
