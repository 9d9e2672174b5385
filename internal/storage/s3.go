// Package storage holds the optional off-site archive for export
// snapshots. Works with any S3-compatible service (AWS S3, MinIO,
// Cloudflare R2, DigitalOcean Spaces).
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	cfg "github.com/gonogoapp/gonogo/internal/config"
)

// Storage is the archive contract the backup service writes through.
type Storage interface {
	// Save stores an object at the given path
	Save(path string, body io.Reader) error

	// Delete removes the object at the given path
	Delete(path string) error
}

// S3Storage implements Storage for S3-compatible object stores.
type S3Storage struct {
	client *s3.Client
	bucket string
}

// New creates archive storage from app config. Returns (nil, nil) when no
// bucket is configured — archival is optional and the caller treats a nil
// Storage as disabled.
func New(c *cfg.Config) (Storage, error) {
	if c.S3Bucket == "" {
		return nil, nil
	}

	slog.Info("initializing backup archive storage",
		"bucket", c.S3Bucket,
		"region", c.S3Region,
		"endpoint", c.S3Endpoint,
	)

	ctx := context.Background()

	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(c.S3Region))

	if c.S3AccessKey != "" && c.S3SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.S3AccessKey, c.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if c.S3Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(c.S3Endpoint)
			o.UsePathStyle = true // required for MinIO and friends
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &S3Storage{
		client: client,
		bucket: c.S3Bucket,
	}, nil
}

func (s *S3Storage) Save(path string, body io.Reader) error {
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        body,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}

	return nil
}
