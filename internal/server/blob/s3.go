package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/LeadConsult/alx-files-manager/internal/common"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Storage stores blobs in an S3-compatible bucket (MinIO in development).
type S3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Client builds an S3 client for a static-credential, custom-endpoint
// backend such as MinIO.
func NewS3Client(ctx context.Context, user, password, region, baseEndpoint string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			user,     // MINIO_ROOT_USER
			password, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(baseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

func NewS3Storage(client *s3.Client, bucket string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket}
}

func (s *S3Storage) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("%w: blob write: %v", common.ErrorTransientStorage, err)
	}
	return nil
}

func (s *S3Storage) WriteVariant(ctx context.Context, key string, size int, data []byte) error {
	return s.Write(ctx, VariantKey(key, size), data)
}

func (s *S3Storage) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: blob read: %v", common.ErrorTransientStorage, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: blob read: %v", common.ErrorTransientStorage, err)
	}
	return data, nil
}

func (s *S3Storage) ReadVariant(ctx context.Context, key string, size int) ([]byte, error) {
	return s.Read(ctx, VariantKey(key, size))
}

func (s *S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: blob head: %v", common.ErrorTransientStorage, err)
	}
	return true, nil
}

// isNotFound recognizes the SDK's missing-object errors. HeadObject reports
// types.NotFound while GetObject reports types.NoSuchKey, so both typed
// errors and the generic API error code are checked.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}
	return false
}
