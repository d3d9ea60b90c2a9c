package minio

import (
	"context"
	"time"
)

const (
	unknownSize int64 = -1

	// DefaultOperationTimeout bounds connection validation and bucket creation.
	DefaultOperationTimeout = 10 * time.Second
)

// Config defines the MinIO connection used for configuration documents and
// workbooks stored in object storage.
type Config struct {
	Connection ConnectionConfig
}

// ConnectionConfig holds the connection details of the MinIO server.
type ConnectionConfig struct {
	Endpoint        string `yaml:"endpoint" envconfig:"MINIO_ENDPOINT"`                   // MinIO server endpoint, e.g., "localhost:9000"
	AccessKeyID     string `yaml:"access_key_id" envconfig:"MINIO_ACCESS_KEY_ID"`         // MinIO access key
	SecretAccessKey string `yaml:"secret_access_key" envconfig:"MINIO_SECRET_ACCESS_KEY"` // MinIO secret key
	UseSSL          bool   `yaml:"use_ssl" envconfig:"MINIO_USE_SSL"`                     // Use SSL (true for "https", false for "http")
	BucketName      string `yaml:"bucket_name" envconfig:"MINIO_BUCKET_NAME"`             // Default bucket name
	Region          string `yaml:"region" envconfig:"MINIO_REGION"`                       // Region for the bucket (e.g., "us-east-1")

	// AccessBucketCreation creates the bucket on startup when it is missing.
	AccessBucketCreation bool `yaml:"access_bucket_creation" envconfig:"MINIO_ACCESS_BUCKET_CREATION"`
}

// Logger is the context-aware logging contract of the MinIO client.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
