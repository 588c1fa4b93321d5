package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"scouthook/internal/config"
)

// Client stores robot photos in an S3-compatible bucket (MinIO in the team's
// deployments) and hands back link-viewable URLs for sheet IMAGE cells.
type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

func New(ctx context.Context, cfg config.S3) (*Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: fmt.Sprintf("http://%s", cfg.Endpoint),
			HostnameImmutable: true}, nil
	})
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion("us-east-1"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey,
			cfg.SecretKey,
			"")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}
	publicURL := cfg.PublicBaseURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("http://%s", cfg.Endpoint)
	}
	return &Client{s3: s3.NewFromConfig(awsCfg), bucket: cfg.Bucket, publicURL: publicURL}, nil
}

// PutImage stores one image under photos/<name> with a public-read ACL so
// anyone holding the link can view it, and returns the viewable URL.
func (c *Client) PutImage(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("photos/%s", name)
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, key), nil
}
