// Package s3 keeps post media in an S3-compatible bucket, mirroring the local
// fs layout with staging/ and files/ key prefixes.
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/okibe-dev/okibe/internal/service"
)

const (
	stagingPrefix = "staging/"
	publicPrefix  = "files/"
)

type Storage struct {
	client *minio.Client
	bucket string
}

var _ service.MediaStore = (*Storage)(nil)

func New(endpoint, accessKey, secretKey, bucket, region string, useSSL bool) (*Storage, error) {
	// Strip scheme if present
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	var creds *credentials.Credentials
	if accessKey == "" || secretKey == "" {
		// Use IAM role credentials if keys are not provided
		creds = credentials.NewIAM("")
	} else {
		creds = credentials.NewStaticV4(accessKey, secretKey, "")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(context.Background(), bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	return &Storage{client: client, bucket: bucket}, nil
}

func (s *Storage) Stage(ctx context.Context, name string, data io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, stagingPrefix+name, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to stage object %s: %w", name, err)
	}
	return nil
}

// Promote is a server-side copy into the public prefix followed by removal of
// the staged key. The copy happens first, so a failure leaves the staged
// object in place rather than losing it.
func (s *Storage) Promote(ctx context.Context, name string) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: publicPrefix + name},
		minio.CopySrcOptions{Bucket: s.bucket, Object: stagingPrefix + name},
	)
	if err != nil {
		return fmt.Errorf("failed to promote object %s: %w", name, err)
	}
	return s.client.RemoveObject(ctx, s.bucket, stagingPrefix+name, minio.RemoveObjectOptions{})
}

func (s *Storage) Discard(ctx context.Context, name string) error {
	return s.client.RemoveObject(ctx, s.bucket, stagingPrefix+name, minio.RemoveObjectOptions{})
}

func (s *Storage) Delete(ctx context.Context, name string) error {
	return s.client.RemoveObject(ctx, s.bucket, publicPrefix+name, minio.RemoveObjectOptions{})
}
