package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const basePath = "images/"

type S3Client interface {
	UploadFile(ctx context.Context, data []byte, filename, contentType string) (string, error)
	PublicURL(key string) string
}

// PutObjectAPI is the subset of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type storageClient struct {
	bucket    string
	publicURL string
	client    PutObjectAPI
}

func NewStorageClient(ctx context.Context, region, bucket, publicURL string) (S3Client, error) {
	if bucket == "" {
		return nil, errors.New("bucket name is empty")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	if publicURL == "" {
		publicURL = "https://" + bucket + ".s3." + region + ".amazonaws.com"
	}
	return NewWithAPI(s3.NewFromConfig(cfg), bucket, publicURL), nil
}

func NewWithAPI(api PutObjectAPI, bucket, publicURL string) S3Client {
	return &storageClient{
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		client:    api,
	}
}

// UploadFile stores data under images/<filename> and returns the object key.
func (s *storageClient) UploadFile(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if filename == "" {
		return "", errors.New("filename is empty")
	}

	key := basePath + filename
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		return "", err
	}
	return key, nil
}

func (s *storageClient) PublicURL(key string) string {
	return s.publicURL + "/" + key
}
