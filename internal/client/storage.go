package client

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"canela-backend/internal/config"
)

// Uploader stores a file in external object storage and returns its public
// URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, originalName, folder string) (string, error)
}

type gcsUploader struct {
	client *storage.Client
	bucket string
}

func NewStorageClient(ctx context.Context, cfg *config.Storage) (Uploader, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}

	return &gcsUploader{client: c, bucket: cfg.Bucket}, nil
}

func (u *gcsUploader) Upload(ctx context.Context, data []byte, originalName, folder string) (string, error) {
	ext := filepath.Ext(originalName)
	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	obj := u.client.Bucket(u.bucket).Object(key)
	w := obj.NewWriter(ctx)
	w.ContentType = contentTypeFor(ext)

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object %s: %w", key, err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("make object public: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, key), nil
}

func contentTypeFor(ext string) string {
	if ct := mime.TypeByExtension(strings.ToLower(ext)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
