package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/recipe-catalog/backend/config"
)

// MaxImageSize is the largest image accepted for upload (5 MiB)
const MaxImageSize = 5 << 20

// s3PutAPI is the subset of the S3 client used for uploads
type s3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageUploader stores recipe images in an S3 bucket
type S3ImageUploader struct {
	client s3PutAPI
	bucket string
}

// NewS3ImageUploader creates an uploader backed by the given S3 configuration
func NewS3ImageUploader(s3Config *config.S3Config) *S3ImageUploader {
	return &S3ImageUploader{
		client: s3Config.Client,
		bucket: s3Config.BucketName,
	}
}

// Upload stores data under recipe-images/<recipe id>/<uuid><ext> and returns the public URL
func (u *S3ImageUploader) Upload(ctx context.Context, recipeID int, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("recipe-images/%d/%s%s", recipeID, uuid.New().String(), extensionFor(contentType))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.bucket, key)
	log.Printf("[ImageService] Successfully uploaded image to S3: %s", publicURL)
	return publicURL, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
