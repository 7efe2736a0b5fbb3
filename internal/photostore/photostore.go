package photostore

import (
	"context"
	"errors"
	"io"
)

// MaxPortraitBytes caps the size of an uploaded portrait.
const MaxPortraitBytes = 10 << 20

var ErrNotFound = errors.New("photo not found")

// PhotoStore persists member portraits. Keys are opaque to callers.
type PhotoStore interface {
	Save(ctx context.Context, prefix, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Supported reports whether mimeType is an accepted portrait format.
func Supported(mimeType string) bool {
	_, ok := extensions[mimeType]
	return ok
}

// Extension returns the file extension for mimeType, ".jpg" if unknown.
func Extension(mimeType string) string {
	if ext, ok := extensions[mimeType]; ok {
		return ext
	}
	return ".jpg"
}

// MIMEType is the inverse of Extension. Unknown extensions map to JPEG.
func MIMEType(ext string) string {
	for mt, e := range extensions {
		if e == ext {
			return mt
		}
	}
	return "image/jpeg"
}
