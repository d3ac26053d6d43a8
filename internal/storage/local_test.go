package storage_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lascala/internal/storage"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := storage.NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	url, err := s.Put(ctx, "listings/u1/1-ab.jpg", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/media/listings/u1/1-ab.jpg", url)

	ok, err := s.Exists(ctx, "listings/u1/1-ab.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Get(ctx, "listings/u1/1-ab.jpg")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "jpeg", string(b))

	require.NoError(t, s.Delete(ctx, "listings/u1/1-ab.jpg"))
	require.NoError(t, s.Delete(ctx, "listings/u1/1-ab.jpg"))

	_, err = s.Get(ctx, "listings/u1/1-ab.jpg")
	var se *storage.StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "not_found", se.ErrorCode())
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := storage.NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)
	_, err = s.Put(context.Background(), "../escape.jpg", strings.NewReader("x"), "image/jpeg")
	assert.Error(t, err)
}

func TestListingKey(t *testing.T) {
	at := time.Unix(0, 42)
	key := storage.ListingKey("seller-1", "png", at)
	assert.True(t, strings.HasPrefix(key, "listings/seller-1/42-"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)

	_, ok := storage.ExtFor("image/gif")
	assert.False(t, ok)
	ext, ok := storage.ExtFor("image/jpeg")
	assert.True(t, ok)
	assert.Equal(t, "jpg", ext)
}
