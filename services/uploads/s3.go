package uploadsvc

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/core"
)

// S3Storage keeps files in an S3 compatible bucket (AWS, MinIO).
type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

var _ core.FileStorage = (*S3Storage)(nil)

func NewS3Storage(ctx context.Context, conf core.UploadsConfig) (*S3Storage, error) {
	s3conf := conf.S3
	if s3conf.Bucket == "" {
		return nil, errors.New("uploads.s3.bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(s3conf.Region)}
	if s3conf.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3conf.AccessKey, s3conf.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "loading aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = s3conf.UsePathStyle
		if s3conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3conf.Endpoint)
		}
	})
	return &S3Storage{
		client:  client,
		bucket:  s3conf.Bucket,
		baseURL: objectBaseURL(s3conf, conf.BaseURL),
	}, nil
}

// objectBaseURL is where stored objects can be fetched from; an explicit uploads.baseURL wins.
func objectBaseURL(s3conf core.S3Config, baseURL string) string {
	if strings.HasPrefix(baseURL, "http://") || strings.HasPrefix(baseURL, "https://") {
		return strings.TrimSuffix(baseURL, "/")
	}
	if s3conf.Endpoint != "" {
		u, err := url.Parse(s3conf.Endpoint)
		if err == nil {
			return strings.TrimSuffix(u.String(), "/") + "/" + s3conf.Bucket
		}
	}
	return "https://" + s3conf.Bucket + ".s3." + s3conf.Region + ".amazonaws.com"
}

func (s *S3Storage) Save(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", errors.Wrap(err, "putting object")
	}
	return s.baseURL + "/" + key, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrap(err, "deleting object")
}

// NewStorage builds the backend selected by conf.Uploads.Backend.
func NewStorage(ctx context.Context, conf *core.Config) (core.FileStorage, error) {
	switch conf.Uploads.Backend {
	case core.UploadsS3:
		return NewS3Storage(ctx, conf.Uploads)
	case core.UploadsDisk, "":
		return NewDiskStorage(conf.Uploads.Dir, conf.Uploads.BaseURL)
	}
	return nil, errors.Errorf("unknown uploads backend %q", conf.Uploads.Backend)
}
