package placeholder

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	DefaultBucket       = "images"
	DefaultObjectPrefix = "products"
)

// UploaderConfig locates the MinIO bucket that serves product images.
type UploaderConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Secure    bool
	Region    string
	Bucket    string
	Prefix    string
}

// Uploader copies generated images into MinIO, so that the catalog service's image URLs
// (e.g. /images/products/headphones-1.jpg) resolve without restarting the storage setup.
type Uploader struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewUploader(config UploaderConfig) (*Uploader, error) {
	if config.Endpoint == "" {
		return nil, errors.New("MinIO endpoint is required")
	}
	if config.Bucket == "" {
		config.Bucket = DefaultBucket
	}
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.Secure,
		Region: config.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &Uploader{client: client, bucket: config.Bucket, prefix: config.Prefix}, nil
}

// ObjectName is the key an image is stored under.
func (u *Uploader) ObjectName(filename string) string {
	return path.Join(u.prefix, filename)
}

// EnsureBucket creates the bucket if it does not exist yet.
func (u *Uploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", u.bucket, err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", u.bucket, err)
	}
	return nil
}

// UploadDir uploads the file for each spec from dir, replacing existing objects, and returns
// the number of files uploaded.
func (u *Uploader) UploadDir(ctx context.Context, dir string, specs []Spec, progress Progress) (int, error) {
	count := 0
	for _, spec := range specs {
		_, err := u.client.FPutObject(ctx, u.bucket, u.ObjectName(spec.Filename),
			filepath.Join(dir, spec.Filename), minio.PutObjectOptions{ContentType: "image/jpeg"})
		if err != nil {
			return count, fmt.Errorf("failed to upload %s: %w", spec.Filename, err)
		}
		count++
		if progress != nil {
			progress(count, len(specs), spec.Filename)
		}
	}
	return count, nil
}
