package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"deyelegliz/internal/domain/service"
	"deyelegliz/internal/usecase"
	"deyelegliz/pkg/errors"
)

// Whole-form cap: four images at the per-image limit plus text fields.
const maxFormBytes = (service.MaxProductImages+1)*service.MaxImageBytes + 1<<20

// readUpload reads at most one byte past the image limit so oversize files are
// still reported with their declared size without buffering them whole.
func readUpload(fh *multipart.FileHeader) (usecase.ImageUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return usecase.ImageUpload{}, errors.BadRequest("Failed to read uploaded file", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxImageBytes+1))
	if err != nil {
		return usecase.ImageUpload{}, errors.BadRequest("Failed to read uploaded file", err)
	}
	return usecase.ImageUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Data:     data,
	}, nil
}

func parseForm(c echo.Context) (*multipart.Form, error) {
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxFormBytes)
	form, err := c.MultipartForm()
	if err != nil {
		return nil, errors.BadRequest("Invalid multipart form", err)
	}
	return form, nil
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func formImages(form *multipart.Form, key string) ([]usecase.ImageUpload, error) {
	headers := form.File[key]
	images := make([]usecase.ImageUpload, 0, len(headers))
	for _, fh := range headers {
		img, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}
