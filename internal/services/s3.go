package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	appconfig "vantage/internal/config"
	"vantage/internal/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Service stores bulk upload files until the import worker consumes them.
// Files are keyed, not public; callers get keys back and presign on demand.
type S3Service struct {
	client     *s3.Client
	bucketName string
	log        *logger.Logger
}

func NewS3Service(s3cfg appconfig.S3Config) (*S3Service, error) {
	log := logger.New("s3_service")

	if s3cfg.AccessKey == "" || s3cfg.SecretKey == "" {
		return nil, log.Error("S3 credentials are empty", fmt.Errorf("accessKey or secretKey is empty"))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(s3cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s3cfg.AccessKey,
			s3cfg.SecretKey,
			"",
		)),
		config.WithRetryMode(aws.RetryModeStandard),
		config.WithRetryMaxAttempts(3),
	)
	if err != nil {
		return nil, log.Error("Unable to load SDK config", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.%s", s3cfg.Region, s3cfg.Endpoint))
		}
	})

	// Fail at boot, not on the first upload, when credentials are wrong.
	_, err = client.ListObjectsV2(context.TODO(), &s3.ListObjectsV2Input{
		Bucket: aws.String(s3cfg.BucketName),
	})
	if err != nil {
		return nil, log.Error("Failed to verify S3 credentials", err)
	}

	log.Success("S3 service initialized")

	return &S3Service{
		client:     client,
		bucketName: s3cfg.BucketName,
		log:        log,
	}, nil
}

// Upload stores the file under a fresh key in the imports/ prefix and returns
// the key. The original filename only survives in its extension.
func (s *S3Service) Upload(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	key := fmt.Sprintf("imports/%s%s", uuid.New().String(), filepath.Ext(filename))

	s.log.Info("Uploading %s as %s", filename, key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", s.log.Error("Failed to upload file to storage", err)
	}

	return key, nil
}

// Download fetches a stored file by key.
func (s *S3Service) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.log.Error("Failed to fetch file %s from storage", err, key)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, s.log.Error("Failed to read file %s from storage", err, key)
	}
	return content, nil
}

// SignedURL returns a time-limited download link for a stored file.
func (s *S3Service) SignedURL(ctx context.Context, key string, duration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(s.client)

	presignedURL, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(duration))
	if err != nil {
		return "", s.log.Error("Failed to generate pre-signed URL", err)
	}

	return presignedURL.URL, nil
}
