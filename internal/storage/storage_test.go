package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/openshelf/openshelf/config"
)

type recordingBackend struct {
	ensured   bool
	ensureErr error
}

func (b *recordingBackend) EnsureBucket(context.Context) error {
	b.ensured = true
	return b.ensureErr
}

func (b *recordingBackend) Put(context.Context, string, io.Reader, int64, string) error {
	return nil
}

func (b *recordingBackend) Get(context.Context, string) (io.ReadCloser, error) {
	return nil, nil
}

func (b *recordingBackend) Delete(context.Context, string) error { return nil }

func (b *recordingBackend) Bucket() string { return "covers" }

func TestEnsureBucketDelegates(t *testing.T) {
	backend := &recordingBackend{}
	s := NewStorage(backend)

	if err := s.EnsureBucket(context.Background()); err != nil {
		t.Fatalf("EnsureBucket: %v", err)
	}
	if !backend.ensured {
		t.Fatal("backend EnsureBucket not called")
	}

	backend.ensureErr = errors.New("bucket create denied")
	if err := s.EnsureBucket(context.Background()); err == nil {
		t.Fatal("expected backend error to propagate")
	}
}

func TestNewFromConfigUnconfigured(t *testing.T) {
	s, err := NewFromConfig(context.Background(), config.StorageConfig{})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil storage when no backend is configured")
	}
}

func TestNewFromConfigUnknownBackend(t *testing.T) {
	_, err := NewFromConfig(context.Background(), config.StorageConfig{Backend: "s3"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNewFromConfigMinio(t *testing.T) {
	s, err := NewFromConfig(context.Background(), config.StorageConfig{
		Backend: "minio",
		Minio: config.MinioConfig{
			Endpoint:  "localhost:9000",
			AccessKey: "access",
			SecretKey: "secret",
			Bucket:    "covers",
		},
	})
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if s == nil || s.Bucket() != "covers" {
		t.Fatalf("unexpected storage: %+v", s)
	}
}

func TestNewMinioClientValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.MinioConfig
	}{
		{"missing endpoint", config.MinioConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}},
		{"missing credentials", config.MinioConfig{Endpoint: "localhost:9000", Bucket: "b"}},
		{"missing bucket", config.MinioConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewMinioClient(tc.cfg); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
