package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"deyelegliz/internal/domain/service"
	"deyelegliz/pkg/logger"
)

// ImageUpload is an uploaded image held in memory. Size is the size the
// client declared, which may exceed len(Data) when the read was capped.
type ImageUpload struct {
	Filename string
	Size     int64
	Data     []byte
}

// Meta sniffs the content type from the bytes rather than trusting the client.
func (u ImageUpload) Meta() service.ImageMeta {
	return service.ImageMeta{
		Filename:    u.Filename,
		Size:        u.Size,
		ContentType: mimetype.Detect(u.Data).String(),
	}
}

func imageMetas(images []ImageUpload) []service.ImageMeta {
	metas := make([]service.ImageMeta, len(images))
	for i, img := range images {
		metas[i] = img.Meta()
	}
	return metas
}

func safeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == "/" {
		return "image"
	}
	return name
}

func objectName(prefix, uid string, at time.Time, filename string) string {
	return fmt.Sprintf("%s/%s/%d_%s", prefix, uid, at.UnixMilli(), safeFilename(filename))
}

// uploadAll stores images concurrently and returns their URLs in input order.
func uploadAll(ctx context.Context, blobs service.FileUploadService, prefix, uid string, at time.Time, images []ImageUpload) ([]string, error) {
	urls := make([]string, len(images))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, img := range images {
		i, img := i, img
		eg.Go(func() error {
			name := objectName(prefix, uid, at, fmt.Sprintf("%d_%s", i, img.Filename))
			url, err := blobs.UploadFile(egCtx, bytes.NewReader(img.Data), img.Meta().ContentType, name)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		for _, url := range urls {
			if url != "" {
				logger.Warn("orphaned upload %s after failed batch", url)
			}
		}
		return nil, err
	}
	return urls, nil
}

// deleteAll removes blobs best-effort; failures are logged and skipped.
func deleteAll(ctx context.Context, blobs service.FileUploadService, urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := blobs.DeleteFile(ctx, url); err != nil {
			logger.Warn("delete blob %s failed: %v", url, err)
		}
	}
}
