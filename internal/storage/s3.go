package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"face-onboarding/pkg/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"go.uber.org/zap"
)

// Gateway uploads registration artifacts to object storage and returns a
// retrievable URL for each.
type Gateway interface {
	UploadUserPhoto(ctx context.Context, name string, image []byte) (string, error)
	UploadAnalysisReport(ctx context.Context, name string, report string) (string, error)
}

type s3Gateway struct {
	client s3iface.S3API
	bucket string
	prefix string
	region string
	log    *zap.Logger
}

func NewS3Gateway(client s3iface.S3API, config utils.AWSConfig, log *zap.Logger) Gateway {
	return &s3Gateway{
		client: client,
		bucket: config.Bucket,
		prefix: strings.TrimSuffix(config.Prefix, "/"),
		region: config.Region,
		log:    log,
	}
}

// UploadUserPhoto stores the raw registration photo
func (g *s3Gateway) UploadUserPhoto(ctx context.Context, name string, image []byte) (string, error) {
	return g.put(ctx, name, image, "image/jpeg")
}

// UploadAnalysisReport stores the analysis report text
func (g *s3Gateway) UploadAnalysisReport(ctx context.Context, name string, report string) (string, error) {
	return g.put(ctx, name, []byte(report), "text/plain")
}

func (g *s3Gateway) put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := g.objectKey(name)

	_, err := g.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		g.log.Error("Failed to upload object to S3",
			zap.Error(err),
			zap.String("bucket", g.bucket),
			zap.String("key", key),
		)
		return "", fmt.Errorf("upload object %s: %w", key, err)
	}

	url := g.objectURL(key)

	g.log.Info("Object stored in S3",
		zap.String("bucket", g.bucket),
		zap.String("key", key),
		zap.Int("size", len(data)),
	)

	return url, nil
}

func (g *s3Gateway) objectKey(name string) string {
	if g.prefix == "" {
		return name
	}
	return path.Join(g.prefix, name)
}

func (g *s3Gateway) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", g.bucket, g.region, key)
}
