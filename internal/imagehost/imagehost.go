// Package imagehost implements the image hosting collaborator: it accepts a
// base64 data URL from the client and returns a durable public URL.
package imagehost

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"bloggy/internal/models"
)

// Host stores an uploaded image and returns its durable URL.
type Host interface {
	Upload(ctx context.Context, img *Image) (string, error)
}

// Disabled is the Host used when no object storage is configured. Uploads
// fail with a client-visible error instead of panicking deeper in the stack.
type Disabled struct{}

func (Disabled) Upload(context.Context, *Image) (string, error) {
	return "", models.NewValidationError("Image uploads are not configured on this server")
}

// Image is a decoded client upload.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

var extByContentType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ParseDataURL decodes a `data:image/...;base64,...` payload as sent by the
// web client. Anything that is not a supported image data URL is rejected.
func ParseDataURL(dataURL string) (*Image, error) {
	if !strings.HasPrefix(dataURL, "data:image/") {
		return nil, models.NewValidationError("Invalid or unsupported file format")
	}

	meta, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil, models.NewValidationError("Invalid or unsupported file format")
	}

	contentType := strings.TrimPrefix(meta, "data:")
	contentType, encoding, ok := strings.Cut(contentType, ";")
	if !ok || encoding != "base64" {
		return nil, models.NewValidationError("Invalid or unsupported file format")
	}

	ext, supported := extByContentType[contentType]
	if !supported {
		return nil, models.NewValidationError(fmt.Sprintf("Unsupported image type %q", contentType))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, models.NewValidationError("Invalid base64 image payload")
	}
	if len(data) == 0 {
		return nil, models.NewValidationError("Empty image payload")
	}

	return &Image{Data: data, ContentType: contentType, Ext: ext}, nil
}
