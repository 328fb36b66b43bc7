package persistence

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-faster/errors"

	"github.com/eisenhub/catalog/modules/catalog/domain/entities/asset"
	"github.com/eisenhub/catalog/pkg/configuration"
)

type s3Storage struct {
	client *s3.Client
	bucket string
}

// NewS3Storage stores blobs in an S3-compatible bucket (AWS S3 or MinIO).
func NewS3Storage(ctx context.Context) (asset.Storage, error) {
	conf := configuration.Use().Blob
	if conf.S3Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.S3Region),
	}
	if conf.S3AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.S3AccessKey, conf.S3SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if conf.S3PathStyle {
			o.UsePathStyle = true
		}
		if conf.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.S3Endpoint)
		}
	})
	return &s3Storage{client: client, bucket: conf.S3Bucket}, nil
}

func (s *s3Storage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &path,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get blob %q", path)
	}
	return out.Body, nil
}

func (s *s3Storage) Save(ctx context.Context, path string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &path,
		Body:   r,
	})
	return errors.Wrapf(err, "failed to put blob %q", path)
}

// NewStorage picks the blob driver from configuration.
func NewStorage(ctx context.Context) (asset.Storage, error) {
	switch configuration.Use().Blob.Driver {
	case "s3":
		return NewS3Storage(ctx)
	default:
		return NewFSStorage()
	}
}
