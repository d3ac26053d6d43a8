package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"
)

// Storage abstracts where uploaded listing photos live.
type Storage interface {
	// Put stores content under key and returns the URL it is served from.
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get returns the stored file; the caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete is idempotent.
	Delete(ctx context.Context, key string) error

	URL(key string) string

	Exists(ctx context.Context, key string) (bool, error)
}

var allowedExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ExtFor maps an accepted image content type to a file extension.
func ExtFor(contentType string) (string, bool) {
	ext, ok := allowedExt[strings.ToLower(strings.TrimSpace(contentType))]
	return ext, ok
}

// ListingKey builds listings/{seller}/{unixnano}-{rand}.{ext}.
func ListingKey(sellerID, ext string, now time.Time) string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("listings/%s/%d-%s.%s", sellerID, now.UnixNano(), hex.EncodeToString(b[:]), ext)
}
