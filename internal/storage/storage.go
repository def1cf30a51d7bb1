// Package storage wraps the object store behind the small surface the rest
// of the backend needs: a full key listing, object reads, and time-limited
// presigned GET URLs.
//
// Clients are constructed per request rather than held for the lifetime of
// the process, so that expiring delegated credentials are never reused stale
// across requests.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"vidgate/internal/apperr"
	"vidgate/internal/config"
	"vidgate/pkg/models"
)

// Client provides object storage operations against a single bucket
type Client struct {
	client     *minio.Client
	bucketName string
}

// New creates a new storage client. Missing credentials fail here with
// apperr.ErrStoreCredentials so the boundary can report a configuration
// error rather than a store-access error.
func New(cfg config.StorageConfig) (*Client, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, apperr.ErrStoreCredentials
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &Client{
		client:     client,
		bucketName: cfg.BucketName,
	}, nil
}

// ListObjects returns the full flat listing of the bucket. The underlying
// client follows listing pages to completion, so large inventories are not
// truncated.
func (c *Client) ListObjects(ctx context.Context) ([]models.ObjectInfo, error) {
	var objects []models.ObjectInfo

	for object := range c.client.ListObjects(ctx, c.bucketName, minio.ListObjectsOptions{
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, &apperr.StoreError{Op: "list", Err: object.Err}
		}
		objects = append(objects, models.ObjectInfo{Key: object.Key, Size: object.Size})
	}

	return objects, nil
}

// ReadObject reads the full content of an object
func (c *Client) ReadObject(ctx context.Context, key string) ([]byte, error) {
	object, err := c.client.GetObject(ctx, c.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &apperr.StoreError{Op: "get", Err: err}
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, &apperr.StoreError{Op: "read", Err: err}
	}

	return data, nil
}

// Upload uploads an object from a reader
func (c *Client) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.client.PutObject(ctx, c.bucketName, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return &apperr.StoreError{Op: "put", Err: err}
	}

	return nil
}

// UploadFile uploads a file from the local filesystem
func (c *Client) UploadFile(ctx context.Context, key, filePath string) error {
	contentType := ContentType(filePath)

	_, err := c.client.FPutObject(ctx, c.bucketName, key, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return &apperr.StoreError{Op: "put", Err: err}
	}

	return nil
}

// PresignedGetURL returns a delegated read URL for an object, valid for ttl
func (c *Client) PresignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	url, err := c.client.PresignedGetObject(ctx, c.bucketName, key, ttl, nil)
	if err != nil {
		return "", &apperr.StoreError{Op: "presign", Err: err}
	}

	return url.String(), nil
}
