// Package objectstore wraps S3-compatible storage for candidate photos.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/votelab/evote-api/internal/apperror"
	"github.com/votelab/evote-api/internal/config"
	"github.com/votelab/evote-api/internal/logger"
)

// Store uploads objects and returns their public URLs
type Store interface {
	Upload(ctx context.Context, name, contentType string, size int64, r io.Reader) (string, error)
}

// MinioStore is the S3-compatible implementation backed by minio-go
type MinioStore struct {
	client *minio.Client
	bucket string
	log    *log.Logger
}

// New connects to the configured endpoint and ensures the bucket exists
func New(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.ObjectStore.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ObjectStore.AccessKey, cfg.ObjectStore.SecretKey, ""),
		Secure: cfg.ObjectStore.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	store := &MinioStore{
		client: client,
		bucket: cfg.ObjectStore.Bucket,
		log:    logger.ObjectStore(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, store.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, store.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		store.log.Info("bucket created", "bucket", store.bucket)
	}

	return store, nil
}

// Upload stores the object under a collision-free key and returns its URL
func (s *MinioStore) Upload(ctx context.Context, name, contentType string, size int64, r io.Reader) (string, error) {
	key := uuid.NewString() + path.Ext(name)
	s.log.Debug("uploading object", "bucket", s.bucket, "key", key, "size", size)

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.Error("upload failed", "key", key, "error", err)
		return "", apperror.ExternalService("failed to store file", err)
	}

	url := s.client.EndpointURL().String() + "/" + s.bucket + "/" + key
	s.log.Info("object uploaded", "key", key, "url", url)
	return url, nil
}
