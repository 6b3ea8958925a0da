package ingest

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/supplyq/supplyq/internal/config"
)

// Source yields the dataset CSV payload.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

type FileSource struct {
	Path string
}

func (s *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %q: %w", s.Path, err)
	}
	return file, nil
}

// ObjectSource fetches the CSV from an S3-compatible object store.
type ObjectSource struct {
	Config config.S3Config
	Object string
}

func (s *ObjectSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.Config.Endpoint == "" || s.Config.Bucket == "" || s.Object == "" {
		return nil, fmt.Errorf("object source requires endpoint, bucket and object")
	}
	client, err := minio.New(s.Config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(s.Config.AccessKeyID, s.Config.SecretAccessKey, ""),
		Secure: s.Config.UseSSL,
		Region: s.Config.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize object store client: %w", err)
	}
	object, err := client.GetObject(ctx, s.Config.Bucket, s.Object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", s.Object, err)
	}
	return object, nil
}
