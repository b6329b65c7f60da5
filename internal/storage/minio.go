package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/openshelf/openshelf/config"
)

// MinioClient stores cover images in a MinIO bucket. The bucket is
// created on startup when missing, so a fresh MinIO instance works
// without manual setup.
type MinioClient struct {
	api    *minio.Client
	bucket string
}

// NewMinioClient connects to MinIO with static credentials.
func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	switch {
	case strings.TrimSpace(cfg.Endpoint) == "":
		return nil, errors.New("minio endpoint is required")
	case strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "":
		return nil, errors.New("minio access key and secret key are required")
	case strings.TrimSpace(cfg.Bucket) == "":
		return nil, errors.New("minio bucket is required")
	}

	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect minio: %w", err)
	}
	return &MinioClient{api: api, bucket: cfg.Bucket}, nil
}

// EnsureBucket creates the cover bucket if it does not exist.
func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.api.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if !exists {
		return m.api.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Put writes a cover image under the given key.
func (m *MinioClient) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := m.api.PutObject(ctx, m.bucket, key, r, size, opts); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Get streams the cover image stored under the given key.
func (m *MinioClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return m.api.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
}

// Delete removes the cover image stored under the given key.
func (m *MinioClient) Delete(ctx context.Context, key string) error {
	return m.api.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

// Bucket reports the cover bucket name.
func (m *MinioClient) Bucket() string { return m.bucket }
