package artifactstore

import (
	"bytes"
	"context"
	"strings"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// MinioStore backs Store with any S3-compatible endpoint.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	log           *zap.Logger
}

func NewMinioStore(cfg config.Config, log *zap.Logger) (*MinioStore, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStore{
		client:        client,
		bucket:        cfg.Storage.Bucket,
		publicBaseURL: strings.TrimRight(cfg.Storage.PublicBaseURL, "/"),
		log:           log.Named("artifactstore"),
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	// Object paths carry a nanosecond timestamp so collisions indicate a
	// concurrent publish, not a retry; refuse to replace.
	exists, err := s.Exists(ctx, path)
	if err == nil && exists {
		return ErrObjectExists
	}

	_, err = s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.Error("object upload failed", zap.String("path", path), zap.Error(err))
		return ErrUpload
	}
	return nil
}

func (s *MinioStore) Delete(ctx context.Context, path string) error {
	return s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{})
}

func (s *MinioStore) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NotFound" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MinioStore) PublicURL(path string) string {
	return s.publicBaseURL + "/" + path
}
