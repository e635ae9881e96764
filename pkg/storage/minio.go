package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tair/crumbly/pkg/logger"
)

// MinioConfig holds MinIO connection parameters
type MinioConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
	Region          string
}

// MinioStorage keeps photos in a MinIO bucket
type MinioStorage struct {
	client     *minio.Client
	bucketName string
}

// NewMinioStorage connects to MinIO and makes sure the bucket exists
func NewMinioStorage(ctx context.Context, cfg MinioConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", cfg.BucketName, err)
		}
		logger.Logger.Info().Str("bucket", cfg.BucketName).Msg("MinIO bucket created")
	}

	return &MinioStorage{client: client, bucketName: cfg.BucketName}, nil
}

// Save uploads the photo as an object
func (s *MinioStorage) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	info, err := s.client.PutObject(ctx, s.bucketName, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload photo to MinIO: %w", err)
	}

	logger.Debug(ctx).
		Str("object", name).
		Int64("size", info.Size).
		Str("etag", info.ETag).
		Msg("Photo uploaded")
	return nil
}

// Open streams the object back
func (s *MinioStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	object, err := s.client.GetObject(ctx, s.bucketName, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.translate(err)
	}
	// GetObject is lazy; Stat surfaces a missing key before the caller writes headers.
	if _, err := object.Stat(); err != nil {
		object.Close()
		return nil, s.translate(err)
	}
	return object, nil
}

// Delete removes the object
func (s *MinioStorage) Delete(ctx context.Context, name string) error {
	if err := s.client.RemoveObject(ctx, s.bucketName, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete photo from MinIO: %w", err)
	}
	return nil
}

func (s *MinioStorage) translate(err error) error {
	var minioErr minio.ErrorResponse
	if errors.As(err, &minioErr) && minioErr.Code == "NoSuchKey" {
		return ErrObjectNotFound
	}
	return fmt.Errorf("failed to get photo from MinIO: %w", err)
}
