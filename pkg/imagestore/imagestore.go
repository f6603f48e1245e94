package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// IImageStore stores resized images and returns their public URLs.
// Implementations are safe for concurrent use.
type IImageStore interface {
	// StoreResized resizes the source image to fit the requested bounds,
	// uploads it and returns the public URL of the stored object.
	StoreResized(ctx context.Context, req ResizeRequest) (string, error)
	// FetchSource reads the original object bytes for a stored key.
	FetchSource(ctx context.Context, key string) ([]byte, error)
	// ObjectURL returns the public URL for an already stored object key.
	ObjectURL(key string) string
	// EnsureBucket creates the configured bucket if it does not exist.
	EnsureBucket(ctx context.Context) error
}

type implImageStore struct {
	client *minio.Client
	cfg    Config
}

// New creates a new image store backed by a MinIO bucket.
func New(cfg Config) (IImageStore, error) {
	if cfg.Endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if cfg.Bucket == "" {
		return nil, ErrBucketRequired
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &implImageStore{client: client, cfg: cfg}, nil
}

func (s *implImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (s *implImageStore) StoreResized(ctx context.Context, req ResizeRequest) (string, error) {
	if len(req.Source) == 0 {
		return "", ErrEmptySource
	}
	if req.Width <= 0 || req.Height <= 0 {
		return "", ErrInvalidBounds
	}

	src, _, err := image.Decode(bytes.NewReader(req.Source))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	resized := Resize(src, req.Width, req.Height)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode resized image: %w", err)
	}

	objectName := fmt.Sprintf("%s_%dx%d.jpg", req.Key, req.Width, req.Height)
	_, err = s.client.PutObject(ctx, s.cfg.Bucket, objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload resized image: %w", err)
	}

	return s.ObjectURL(objectName), nil
}

func (s *implImageStore) FetchSource(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptySource
	}

	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source image: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read source image: %w", err)
	}
	return data, nil
}

func (s *implImageStore) ObjectURL(key string) string {
	base := s.cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if s.cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, s.cfg.Endpoint)
	}
	return fmt.Sprintf("%s/%s/%s", base, s.cfg.Bucket, key)
}
