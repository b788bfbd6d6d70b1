package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioService stores generated report files in an S3-compatible bucket.
type MinioService interface {
	Upload(ctx context.Context, bucket, object, contentType string, reader io.Reader, size int64) error
	// GetPresignedURL returns a time-limited download link that saves the
	// object under its base name.
	GetPresignedURL(ctx context.Context, bucket, object string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, bucket, object string) error
	EnsureBucketExists(ctx context.Context, bucket string) error
}

type minioStorage struct {
	client *minio.Client
}

func NewMinioService(endpoint, accessKey, secretKey string, useSSL bool) (MinioService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &minioStorage{client: client}, nil
}

func (m *minioStorage) Upload(ctx context.Context, bucket, object, contentType string, reader io.Reader, size int64) error {
	info, err := m.client.PutObject(ctx, bucket, object, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, object, err)
	}
	if size >= 0 && info.Size != size {
		return fmt.Errorf("put %s/%s: wrote %d of %d bytes", bucket, object, info.Size, size)
	}
	return nil
}

func (m *minioStorage) GetPresignedURL(ctx context.Context, bucket, object string, expiry time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(object)))

	signed, err := m.client.PresignedGetObject(ctx, bucket, object, expiry, params)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", bucket, object, err)
	}
	return signed.String(), nil
}

func (m *minioStorage) Delete(ctx context.Context, bucket, object string) error {
	if err := m.client.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s/%s: %w", bucket, object, err)
	}
	return nil
}

func (m *minioStorage) EnsureBucketExists(ctx context.Context, bucket string) error {
	found, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if found {
		return nil
	}
	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}
