package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDocumentStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("upload and retrieve", func(t *testing.T) {
		store := NewMemoryDocumentStorage(0)
		require.NoError(t, store.Upload(ctx, "residents/abc/lease.pdf", []byte("pdf-bytes"), "application/pdf"))

		exists, err := store.ObjectExists(ctx, "residents/abc/lease.pdf")
		require.NoError(t, err)
		assert.True(t, exists)

		data, contentType, ok := store.Get("residents/abc/lease.pdf")
		require.True(t, ok)
		assert.Equal(t, []byte("pdf-bytes"), data)
		assert.Equal(t, "application/pdf", contentType)
	})

	t.Run("enforces size limit", func(t *testing.T) {
		store := NewMemoryDocumentStorage(4)
		err := store.Upload(ctx, "too-big", []byte("12345"), "text/plain")
		assert.ErrorIs(t, err, ErrDocumentTooLarge)

		require.NoError(t, store.Upload(ctx, "fits", []byte("1234"), "text/plain"))
	})

	t.Run("rejects empty key", func(t *testing.T) {
		store := NewMemoryDocumentStorage(0)
		assert.Error(t, store.Upload(ctx, "", []byte("x"), "text/plain"))
	})

	t.Run("download URL only for stored documents", func(t *testing.T) {
		store := NewMemoryDocumentStorage(0)
		_, _, err := store.GenerateDownloadURL(ctx, "missing", time.Minute)
		assert.Error(t, err)

		require.NoError(t, store.Upload(ctx, "doc", []byte("x"), "text/plain"))
		url, expiresAt, err := store.GenerateDownloadURL(ctx, "doc", time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "doc")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("delete", func(t *testing.T) {
		store := NewMemoryDocumentStorage(0)
		require.NoError(t, store.Upload(ctx, "doc", []byte("x"), "text/plain"))
		require.NoError(t, store.DeleteObject(ctx, "doc"))

		exists, err := store.ObjectExists(ctx, "doc")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
