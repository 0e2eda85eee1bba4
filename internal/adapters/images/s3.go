package images

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"eventcompanion/internal/domain"
)

// S3Config holds configuration for the S3-compatible image bucket.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	// PublicBaseURL is the URL prefix under which uploaded objects are
	// publicly reachable (bucket website or CDN). Stored references are
	// PublicBaseURL + "/" + key.
	PublicBaseURL string
}

type s3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store returns an ImageStore that uploads to an S3 bucket and returns
// stable public URLs.
func NewS3Store(config S3Config) domain.ImageStore {
	awsCfg := aws.Config{
		Region: config.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			),
		),
	}
	return &s3Store{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  config.Bucket,
		baseURL: strings.TrimSuffix(config.PublicBaseURL, "/"),
	}
}

func (s *s3Store) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to s3: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
