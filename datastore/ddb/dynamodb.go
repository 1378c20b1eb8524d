/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/suparena/healthprofile/datastore"
	"github.com/suparena/healthprofile/errors"
	"github.com/suparena/healthprofile/registry"
)

// Client is the part of the DynamoDB API the store uses. *dynamodb.Client
// implements it.
type Client interface {
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *sdk.BatchWriteItemInput, optFns ...func(*sdk.Options)) (*sdk.BatchWriteItemOutput, error)
}

var _ datastore.SampleStore = (*SampleStore)(nil)

// SampleStore implements datastore.SampleStore on a single DynamoDB table.
type SampleStore struct {
	client    Client
	tableName string
	registry  *registry.Registry
	indexMap  IndexMap
	log       *zap.Logger
}

// Option configures a SampleStore.
type Option func(*SampleStore)

// WithRegistry sets the registry stored payloads are reconstructed with.
func WithRegistry(r *registry.Registry) Option {
	return func(s *SampleStore) {
		s.registry = r
	}
}

// WithIndexMap sets the key layout of the table.
func WithIndexMap(m IndexMap) Option {
	return func(s *SampleStore) {
		s.indexMap = m
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *SampleStore) {
		s.log = log
	}
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are
// used when both keys are set, the default AWS chain otherwise. A non-empty
// endpoint points the client at e.g. DynamoDB Local.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, endpoint string) (*sdk.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(awsRegion)}
	if awsAccessKey != "" && awsSecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// New constructs a SampleStore on tableName.
func New(client Client, tableName string, opts ...Option) (*SampleStore, error) {
	if client == nil {
		return nil, errors.NewValidationError("client", "must not be nil")
	}
	if tableName == "" {
		return nil, errors.NewValidationError("tableName", "must not be empty")
	}

	s := &SampleStore{
		client:    client,
		tableName: tableName,
		indexMap:  DefaultIndexMap,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.indexMap.Validate(); err != nil {
		return nil, err
	}
	if s.registry == nil {
		s.registry = registry.Default()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.With(zap.String("table", tableName))
	return s, nil
}

// NewDynamodbSampleStore creates the DynamoDB client and the store on top of it.
func NewDynamodbSampleStore(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, endpoint, tableName string, opts ...Option) (*SampleStore, error) {
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	store, err := New(client, tableName, opts...)
	if err != nil {
		return nil, err
	}
	store.log.Debug("DynamoDB store initialized", zap.String("region", awsRegion))
	return store, nil
}

// TableName returns the table the store reads and writes.
func (s *SampleStore) TableName() string {
	return s.tableName
}
