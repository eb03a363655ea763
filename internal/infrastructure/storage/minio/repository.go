package minio

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/pkg/errors"
)

var (
	ErrObjectNotFound = errors.New(errors.ErrCodeNotFound, "object not found")
	ErrInvalidKey     = errors.New(errors.ErrCodeValidation, "object key is required")
)

const noSuchKey = "NoSuchKey"

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
}

// UploadResult is returned by Put.
type UploadResult struct {
	Bucket     string
	Key        string
	ETag       string
	Size       int64
	UploadedAt time.Time
}

// Repository is key/value object access within the client's bucket.
type Repository interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (*UploadResult, error)
	Get(ctx context.Context, key string) ([]byte, error)
	// List returns objects under prefix, sorted by key.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

type minioRepository struct {
	client *Client
	logger logging.Logger
}

func NewRepository(client *Client, log logging.Logger) Repository {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &minioRepository{client: client, logger: log.Named("minio.repo")}
}

func (r *minioRepository) Put(ctx context.Context, key string, data []byte, contentType string) (*UploadResult, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrInvalidKey
	}
	if contentType == "" && len(data) > 0 {
		contentType = http.DetectContentType(data[:minInt(512, len(data))])
	}
	info, err := r.client.api.PutObject(ctx, r.client.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "upload failed").WithDetail(key)
	}
	r.logger.Debug("object stored", logging.String("key", key), logging.Int("bytes", len(data)))
	return &UploadResult{
		Bucket:     r.client.bucket,
		Key:        key,
		ETag:       info.ETag,
		Size:       int64(len(data)),
		UploadedAt: time.Now().UTC(),
	}, nil
}

func (r *minioRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrInvalidKey
	}
	obj, err := r.client.api.GetObject(ctx, r.client.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, r.mapErr(err, key, "download failed")
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, r.mapErr(err, key, "download failed")
	}
	return data, nil
}

func (r *minioRepository) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	ch := r.client.api.ListObjects(ctx, r.client.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	var out []ObjectInfo
	for obj := range ch {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeStorage, "list failed").WithDetail(prefix)
		}
		out = append(out, ObjectInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			ContentType:  obj.ContentType,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *minioRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.client.api.StatObject(ctx, r.client.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == noSuchKey {
		return false, nil
	}
	return false, errors.Wrap(err, errors.ErrCodeStorage, "stat failed").WithDetail(key)
}

func (r *minioRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.api.RemoveObject(ctx, r.client.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorage, "delete failed").WithDetail(key)
	}
	return nil
}

func (r *minioRepository) mapErr(err error, key, msg string) error {
	if minio.ToErrorResponse(err).Code == noSuchKey {
		return ErrObjectNotFound.WithDetail(key).WithCause(err)
	}
	return errors.Wrap(err, errors.ErrCodeStorage, msg).WithDetail(key)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
