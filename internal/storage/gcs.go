package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/openshelf/openshelf/config"
	"google.golang.org/api/option"
)

// GCSClient stores cover images in a Google Cloud Storage bucket.
// Credentials come from the configured service account file or from
// application default credentials when none is set.
type GCSClient struct {
	api     *storage.Client
	bucket  string
	project string
}

// NewGCSClient opens a GCS client for the cover bucket.
func NewGCSClient(ctx context.Context, cfg config.GCSConfig) (*GCSClient, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if creds := strings.TrimSpace(cfg.CredentialsFile); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}
	api, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect gcs: %w", err)
	}
	return &GCSClient{api: api, bucket: cfg.Bucket, project: cfg.ProjectID}, nil
}

// EnsureBucket creates the cover bucket if it does not exist. Creation
// needs a project ID; lookups do not.
func (g *GCSClient) EnsureBucket(ctx context.Context) error {
	handle := g.api.Bucket(g.bucket)
	_, err := handle.Attrs(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrBucketNotExist):
		if strings.TrimSpace(g.project) == "" {
			return errors.New("gcs project id is required to create bucket")
		}
		return handle.Create(ctx, g.project, nil)
	default:
		return fmt.Errorf("check bucket %s: %w", g.bucket, err)
	}
}

// Put writes a cover image under the given key.
func (g *GCSClient) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	w := g.api.Bucket(g.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("put %s: %w", key, err)
	}
	return w.Close()
}

// Get streams the cover image stored under the given key.
func (g *GCSClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return g.api.Bucket(g.bucket).Object(key).NewReader(ctx)
}

// Delete removes the cover image stored under the given key.
func (g *GCSClient) Delete(ctx context.Context, key string) error {
	return g.api.Bucket(g.bucket).Object(key).Delete(ctx)
}

// Bucket reports the cover bucket name.
func (g *GCSClient) Bucket() string { return g.bucket }
