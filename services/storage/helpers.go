package storage

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/pkg/errors"

	"github.com/customeros/mailpdf/config"
	"github.com/customeros/mailpdf/interfaces"
	"github.com/customeros/mailpdf/internal/enum"
	"github.com/customeros/mailpdf/services/storage/aws_client"
)

// NewS3StorageService creates a StorageService configured for AWS S3
func NewS3StorageService(awsRegion, accessKeyID, accessKeySecret, bucketName, keyPrefix string) *ObjectStorageService {
	s3Client := aws_client.NewS3Client(&aws.Config{
		Region:      aws.String(awsRegion),
		Credentials: credentials.NewStaticCredentials(accessKeyID, accessKeySecret, ""),
	})

	return NewStorageService(s3Client, StorageConfig{
		BucketName: bucketName,
		KeyPrefix:  keyPrefix,
	})
}

// NewR2StorageService creates a StorageService configured for Cloudflare R2
func NewR2StorageService(accountID, accessKeyID, accessKeySecret, bucketName, keyPrefix string) *ObjectStorageService {
	return NewStorageService(aws_client.NewR2Client(accountID, accessKeyID, accessKeySecret), StorageConfig{
		BucketName: bucketName,
		KeyPrefix:  keyPrefix,
	})
}

// NewStorageServiceFromConfig builds the backend selected by STORAGE_BACKEND.
func NewStorageServiceFromConfig(ctx context.Context, cfg *config.Config) (interfaces.StorageService, error) {
	sc := cfg.StorageConfig
	switch enum.StorageBackend(sc.Backend) {
	case enum.StorageLocal:
		local, err := NewLocalStorageService(sc.OutputDir)
		if err != nil {
			return nil, err
		}
		return local, nil
	case enum.StorageS3:
		s3 := cfg.S3StorageConfig
		return NewS3StorageService(s3.Region, s3.AccessKeyID, s3.AccessKeySecret, s3.Bucket, sc.KeyPrefix), nil
	case enum.StorageR2:
		r2 := cfg.R2StorageConfig
		return NewR2StorageService(r2.AccountID, r2.AccessKeyID, r2.AccessKeySecret, r2.Bucket, sc.KeyPrefix), nil
	case enum.StorageRedis:
		client, err := NewRedisClient(ctx, sc.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisStorageService(client, sc.KeyPrefix, sc.OutputTTL), nil
	default:
		return nil, errors.Errorf("unknown storage backend %q", sc.Backend)
	}
}
