// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/norruva/dpp-backend/internal/config"
)

var ErrInvalidDataURI = errors.New("invalid data URI")

// StorageService moves generated images out of the product record and into
// S3. Without AWS credentials it leaves data URIs in place.
type StorageService struct {
	s3Client s3iface.S3API
	config   *config.Config
	now      func() time.Time
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

var imageExtensions = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if !config.AWSEnabled() {
		// Generated images stay inline as data URIs
		return &StorageService{config: config, now: time.Now}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
		now:      time.Now,
	}, nil
}

// Enabled reports whether uploads go to S3.
func (s *StorageService) Enabled() bool {
	return s != nil && s.s3Client != nil
}

// StoreImage uploads an image given as a data URI and returns its public
// URL. Plain URLs, and every input when S3 is not configured, are returned
// unchanged.
func (s *StorageService) StoreImage(ctx context.Context, productID, imageURL string) (string, error) {
	if !s.Enabled() || !strings.HasPrefix(imageURL, "data:") {
		return imageURL, nil
	}

	mimeType, payload, err := decodeDataURI(imageURL)
	if err != nil {
		return "", err
	}

	key := s.generateFileName(productID, imageExtensions[mimeType])
	result, err := s.uploadToS3(ctx, payload, key, mimeType)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": productID,
		"key":        result.Key,
		"size":       result.Size,
	}).Info("Generated image uploaded")
	return result.URL, nil
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

// decodeDataURI splits a base64 data URI into its media type and payload.
func decodeDataURI(uri string) (string, []byte, error) {
	header, data, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return "", nil, ErrInvalidDataURI
	}
	mimeType := strings.TrimSuffix(header, ";base64")
	if _, ok := imageExtensions[mimeType]; !ok {
		return "", nil, fmt.Errorf("%w: unsupported media type %q", ErrInvalidDataURI, mimeType)
	}
	payload, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mimeType, payload, nil
}

func (s *StorageService) generateFileName(productID, ext string) string {
	id := uuid.New()
	timestamp := s.now().Format("20060102")
	return fmt.Sprintf("products/%s/%s_%s%s", productID, timestamp, id.String()[:8], ext)
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}
