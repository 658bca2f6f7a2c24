package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
	"github.com/johnquangdev/signal-pulse/pkg/config"
)

const (
	contentTypeJSON     = "application/json"
	contentTypeMarkdown = "text/markdown; charset=utf-8"
	contentTypeText     = "text/plain; charset=utf-8"
)

// MinIOStore writes run artifacts as objects of one bucket
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore creates a MinIO backed artifact store and makes sure the
// bucket exists
func NewMinIOStore(ctx context.Context, cfg *config.StorageConfig) (*MinIOStore, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &MinIOStore{
		client: minioClient,
		bucket: cfg.BucketName,
	}

	if err := store.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}

	return store, nil
}

// ensureBucket creates the bucket when it does not exist yet
func (m *MinIOStore) ensureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// SaveRun uploads the four artifact objects of a run under its folder prefix
func (m *MinIOStore) SaveRun(ctx context.Context, a entities.RunArtifacts) (entities.SavedPaths, error) {
	keys := a.Paths()

	objects := []struct {
		key         string
		content     []byte
		contentType string
	}{
		{keys.SignalsPath, a.Signals, contentTypeJSON},
		{keys.RunPath, a.Run, contentTypeJSON},
		{keys.ReportPath, []byte(a.Report), contentTypeMarkdown},
		{keys.NotesPath, []byte(a.NotesMarkdown), contentTypeMarkdown},
	}
	for _, o := range objects {
		if err := m.put(ctx, o.key, o.content, o.contentType); err != nil {
			return entities.SavedPaths{}, err
		}
	}

	return entities.SavedPaths{
		Outdir:      m.location(keys.Outdir),
		SignalsPath: m.location(keys.SignalsPath),
		RunPath:     m.location(keys.RunPath),
		ReportPath:  m.location(keys.ReportPath),
		NotesPath:   m.location(keys.NotesPath),
	}, nil
}

// SaveRaw uploads one diagnostic text object under folder
func (m *MinIOStore) SaveRaw(ctx context.Context, folder, name, content string) (string, error) {
	key := path.Join(folder, name)
	if err := m.put(ctx, key, []byte(content), contentTypeText); err != nil {
		return "", err
	}
	return m.location(key), nil
}

func (m *MinIOStore) put(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// location renders a key as bucket/key
func (m *MinIOStore) location(key string) string {
	return path.Join(m.bucket, key)
}
