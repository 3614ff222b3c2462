package imagehost

import (
	"bytes"
	"context"
	"fmt"

	"bloggy/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioHost stores uploads in a MinIO (S3-compatible) bucket.
type MinioHost struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinioHost connects to MinIO and ensures the upload bucket exists.
func NewMinioHost(ctx context.Context, cfg *config.Config) (*MinioHost, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	publicURL := cfg.MinioPublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.MinioUseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)
	}

	return &MinioHost{client: client, bucket: cfg.MinioBucket, publicURL: publicURL}, nil
}

// Upload stores the image under a random key and returns its durable URL.
func (h *MinioHost) Upload(ctx context.Context, img *Image) (string, error) {
	key := fmt.Sprintf("uploads/%s.%s", uuid.New().String(), img.Ext)
	_, err := h.client.PutObject(ctx, h.bucket, key, bytes.NewReader(img.Data), int64(len(img.Data)),
		minio.PutObjectOptions{ContentType: img.ContentType})
	if err != nil {
		return "", fmt.Errorf("minio put object: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", h.publicURL, h.bucket, key), nil
}
