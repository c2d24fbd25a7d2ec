package clients

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/lightbnb/lightbnb/config"
)

// PhotoBucket stores property photos in an AWS S3 bucket.
type PhotoBucket struct {
	uploader *manager.Uploader
	bucket   string
	region   string
}

// NewPhotoBucket configures an S3 client for the bucket named in the config.
func NewPhotoBucket(cfg config.Config) (*PhotoBucket, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")
	awsCfg, err := s3Config.LoadDefaultConfig(context.TODO(), s3Config.WithCredentialsProvider(creds), s3Config.WithRegion(cfg.S3.Region))
	if err != nil {
		return nil, err
	}
	return &PhotoBucket{
		uploader: manager.NewUploader(s3.NewFromConfig(awsCfg)),
		bucket:   cfg.S3.Bucket,
		region:   cfg.S3.Region,
	}, nil
}

// Upload stores body under key and returns the object's public URL.
func (b *PhotoBucket) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := b.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: int64(len(body)),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return b.URL(key), nil
}

// URL returns the public URL of the object stored under key.
func (b *PhotoBucket) URL(key string) string {
	return "https://" + b.bucket + ".s3." + b.region + ".amazonaws.com/" + key
}
