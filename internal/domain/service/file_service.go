package service

import (
	"context"
	"io"
)

// FileUploadService stores public blobs and addresses them by URL.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, contentType, objectName string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
