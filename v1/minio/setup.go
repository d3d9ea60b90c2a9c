package minio

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Aleph-Alpha/sheetmap/v1/observability"
)

// MinioClient wraps the MinIO SDK client with a default bucket, sentinel error
// translation, an optional observer and an optional logger.
type MinioClient struct {
	client *minio.Client

	// cfg holds the configuration for this MinIO client instance
	cfg Config

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// logger provides optional context-aware logging capabilities
	logger Logger
}

// NewClient creates a MinIO client, validates the connection and makes sure
// the configured bucket exists (creating it when AccessBucketCreation is set).
//
// Example:
//
//	client, err := minio.NewClient(minio.Config{
//	    Connection: minio.ConnectionConfig{
//	        Endpoint:        "localhost:9000",
//	        AccessKeyID:     "minio_admin",
//	        SecretAccessKey: "minio_admin",
//	        BucketName:      "workbooks",
//	    },
//	})
//	if err != nil {
//	    return fmt.Errorf("failed to initialize MinIO client: %w", err)
//	}
//	client = client.WithLogger(log).WithObserver(m)
func NewClient(config Config) (*MinioClient, error) {
	client, err := connectToMinio(config)
	if err != nil {
		return nil, err
	}

	minioClient := &MinioClient{
		client: client,
		cfg:    config,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultOperationTimeout)
	defer cancel()
	if err := minioClient.ensureBucketExists(ctx); err != nil {
		return nil, err
	}
	return minioClient, nil
}

func connectToMinio(cfg Config) (*minio.Client, error) {
	if cfg.Connection.Endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	return minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
}

// ensureBucketExists checks the configured bucket and creates it if allowed.
func (m *MinioClient) ensureBucketExists(ctx context.Context) error {
	bucketName := m.cfg.Connection.BucketName
	if bucketName == "" {
		return fmt.Errorf("bucket name is empty")
	}

	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists, bucket: %v, err: %w", bucketName, err)
	}
	if exists {
		return nil
	}
	if !m.cfg.Connection.AccessBucketCreation {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucketName)
	}

	m.logInfo(ctx, "Bucket does not exist, creating it", map[string]interface{}{
		"bucket": bucketName,
		"region": m.cfg.Connection.Region,
	})
	if err := m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{
		Region: m.cfg.Connection.Region,
	}); err != nil {
		return err
	}
	m.logInfo(ctx, "Successfully created bucket", map[string]interface{}{
		"bucket": bucketName,
	})
	return nil
}

// Bucket returns the configured bucket name.
func (m *MinioClient) Bucket() string {
	return m.cfg.Connection.BucketName
}

// WithObserver attaches an observer that is notified after every object
// operation. It returns the client for chaining.
func (m *MinioClient) WithObserver(observer observability.Observer) *MinioClient {
	m.observer = observer
	return m
}

// WithLogger attaches a logger for lifecycle events. It returns the client for
// chaining.
func (m *MinioClient) WithLogger(logger Logger) *MinioClient {
	m.logger = logger
	return m
}

func (m *MinioClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (m *MinioClient) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.WarnWithContext(ctx, msg, err, fields)
	}
}
