package storage

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/mailpdf/interfaces"
	"github.com/customeros/mailpdf/internal/tracing"
	"github.com/customeros/mailpdf/services/storage/aws_client"
)

// ObjectStorageService implements StorageService on an S3 compatible bucket
type ObjectStorageService struct {
	client     aws_client.S3Client
	bucketName string
	keyPrefix  string
}

// StorageConfig holds configuration for object storage
type StorageConfig struct {
	BucketName string
	KeyPrefix  string
}

// NewStorageService creates a new object storage service
func NewStorageService(client aws_client.S3Client, config StorageConfig) *ObjectStorageService {
	return &ObjectStorageService{
		client:     client,
		bucketName: config.BucketName,
		keyPrefix:  config.KeyPrefix,
	}
}

// Upload stores data in object storage
func (s *ObjectStorageService) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Upload")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	tracing.TagEntity(span, key)

	if err := validateKey(key); err != nil {
		tracing.TraceErr(span, err)
		return err
	}

	return s.client.Upload(ctx, s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.keyPrefix + key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
}

// Download retrieves data from object storage
func (s *ObjectStorageService) Download(ctx context.Context, key string) ([]byte, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Download")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	tracing.TagEntity(span, key)

	if err := validateKey(key); err != nil {
		return nil, err
	}
	return s.client.Download(ctx, s.bucketName, s.keyPrefix+key)
}

// Delete removes an object from storage
func (s *ObjectStorageService) Delete(ctx context.Context, key string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.Delete")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)
	tracing.TagEntity(span, key)

	if err := validateKey(key); err != nil {
		return err
	}
	return s.client.Delete(ctx, s.bucketName, s.keyPrefix+key)
}

// List returns the objects under the configured prefix
func (s *ObjectStorageService) List(ctx context.Context) ([]interfaces.StoredObject, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ObjectStorageService.List")
	defer span.Finish()
	tracing.SetDefaultStorageSpanTags(ctx, span)

	files, err := s.client.ListFiles(ctx, s.bucketName, s.keyPrefix)
	if err != nil {
		return nil, err
	}

	objects := make([]interfaces.StoredObject, 0, len(files))
	for _, f := range files {
		objects = append(objects, interfaces.StoredObject{
			Key:        strings.TrimPrefix(f.Key, s.keyPrefix),
			Size:       f.Size,
			ModifiedAt: f.LastModified,
		})
	}
	return objects, nil
}
