package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"deyelegliz/pkg/logger"
)

const (
	publicPrefix   = "https://storage.googleapis.com/"
	firebasePrefix = "https://firebasestorage.googleapis.com/v0/b/"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, corsOrigins []string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	storageClient := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}

	if err := storageClient.setBucketCORS(ctx, corsOrigins); err != nil {
		logger.Warn("Failed to set CORS configuration: %v", err)
	}

	return storageClient, nil
}

func (c *CloudStorageClient) setBucketCORS(ctx context.Context, origins []string) error {
	bucket := c.client.Bucket(c.bucketName)

	corsConfig := storage.CORS{
		MaxAge:          3600,
		Methods:         []string{"GET", "HEAD"},
		Origins:         origins,
		ResponseHeaders: []string{"Content-Type"},
	}

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %v", err)
	}

	if len(bucketAttrs.CORS) == 0 {
		_, err := bucket.Update(ctx, storage.BucketAttrsToUpdate{
			CORS: []storage.CORS{corsConfig},
		})
		if err != nil {
			return fmt.Errorf("failed to update bucket CORS: %v", err)
		}
	}

	return nil
}

// UploadFile writes a publicly readable object and returns its URL.
func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, contentType, objectName string) (string, error) {
	obj := c.client.Bucket(c.bucketName).Object(objectName)

	// Cancelling the writer's context aborts the upload instead of committing a partial object.
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	wc := obj.NewWriter(writeCtx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		cancel()
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %v", err)
	}

	return PublicURL(c.bucketName, objectName), nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	objectName, err := ObjectNameFromURL(c.bucketName, fileURL)
	if err != nil {
		return err
	}

	if err := c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}

	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

func PublicURL(bucket, objectName string) string {
	return publicPrefix + bucket + "/" + objectName
}

// ObjectNameFromURL accepts both public object URLs and Firebase download URLs.
func ObjectNameFromURL(bucket, fileURL string) (string, error) {
	switch {
	case strings.HasPrefix(fileURL, publicPrefix):
		parts := strings.SplitN(fileURL[len(publicPrefix):], "/", 2)
		if len(parts) != 2 || parts[0] != bucket || parts[1] == "" {
			return "", fmt.Errorf("invalid GCS URL format or bucket mismatch")
		}
		return parts[1], nil

	case strings.HasPrefix(fileURL, firebasePrefix):
		u, err := url.Parse(fileURL)
		if err != nil {
			return "", fmt.Errorf("invalid download URL: %v", err)
		}
		// EscapedPath keeps %2F inside the object segment intact.
		rest := strings.TrimPrefix(u.EscapedPath(), "/v0/b/")
		parts := strings.SplitN(rest, "/o/", 2)
		if len(parts) != 2 || parts[0] != bucket {
			return "", fmt.Errorf("invalid download URL format or bucket mismatch")
		}
		name, err := url.PathUnescape(parts[1])
		if err != nil || name == "" {
			return "", fmt.Errorf("invalid object name in download URL")
		}
		return name, nil
	}
	return "", fmt.Errorf("invalid GCS URL format")
}
