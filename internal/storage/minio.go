package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is a thin wrapper around the minio client used by the exporter.
type ObjectStore struct {
	client *minio.Client
}

// NewObjectStore creates a client for cfg. No request is made until first use.
func NewObjectStore(cfg *MinIOConfig) (*ObjectStore, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	return &ObjectStore{client: mc}, nil
}

// ensureBucket creates bucket unless it already exists.
func (s *ObjectStore) ensureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("minio bucket exists: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		// lost a creation race
		if ok, xerr := s.client.BucketExists(ctx, bucket); xerr == nil && ok {
			return nil
		}
		return fmt.Errorf("minio bucket ensure: %w", err)
	}
	return nil
}

// Upload stores size bytes from reader at ref.
func (s *ObjectStore) Upload(ctx context.Context, ref ObjectRef, reader io.Reader, size int64, contentType string) error {
	if err := s.ensureBucket(ctx, ref.Bucket); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, ref.Bucket, ref.Key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", ref, err)
	}
	return nil
}

// Ping checks that the endpoint answers, for readiness reporting.
func (s *ObjectStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := s.client.ListBuckets(ctx)
	return err
}
