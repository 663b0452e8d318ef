package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cawebsite-backend/internal/config"
)

// Store uploads site assets (images, brochures, resumes) to an S3-compatible
// bucket and hands back durable public URLs. Content documents only ever keep
// the URL; nothing here is consulted on the read path.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New returns nil when object storage is not configured; callers treat a nil
// store as "uploads disabled".
func New(cfg *config.Config) (*Store, error) {
	if strings.TrimSpace(cfg.MinioEndpoint) == "" {
		return nil, nil
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.MinioBucket, err)
		}
	}

	publicURL := cfg.MinioPublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.MinioEndpoint
	}

	return &Store{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Upload stores the file under folder/<uuid><ext> and returns its public URL.
func (s *Store) Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	key := folder + "/" + uuid.NewString() + ext

	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, key, reader, size, opts); err != nil {
		return "", fmt.Errorf("put object %q: %w", key, err)
	}
	return s.publicURL + "/" + s.bucket + "/" + key, nil
}

// Delete removes an object; a missing object is treated as success.
func (s *Store) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		reason := strings.ToLower(err.Error())
		if strings.Contains(reason, "nosuchkey") || strings.Contains(reason, "not found") {
			return nil
		}
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}
