package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) (Storage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")
	ls, err := NewLocal(config.UploadConfig{Dir: dir})
	require.NoError(t, err)
	return ls, dir
}

func TestNewLocal_RequiresDir(t *testing.T) {
	_, err := NewLocal(config.UploadConfig{})
	assert.Error(t, err)
}

func TestLocalStorage_PutCreatesRootOnFirstUse(t *testing.T) {
	ls, dir := newTestLocal(t)
	ctx := context.Background()

	// Root must not exist until the first write
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	info, err := ls.Put(ctx, "1700000000-abc123.jpg", strings.NewReader("jpegbytes"), PutObjectOptions{
		Size:        9,
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "1700000000-abc123.jpg", info.Key)
	assert.Equal(t, int64(9), info.Size)
	assert.Equal(t, "image/jpeg", info.ContentType)

	_, err = os.Stat(filepath.Join(dir, "1700000000-abc123.jpg"))
	assert.NoError(t, err)
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ls, _ := newTestLocal(t)
	ctx := context.Background()

	_, err := ls.Put(ctx, "photo.png", strings.NewReader("pngbytes"), PutObjectOptions{Size: 8})
	require.NoError(t, err)

	rc, info, err := ls.Get(ctx, "photo.png")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pngbytes", string(data))
	assert.Equal(t, int64(8), info.Size)
	assert.Equal(t, "image/png", info.ContentType)
}

func TestLocalStorage_GetMissingKey(t *testing.T) {
	ls, _ := newTestLocal(t)

	_, _, err := ls.Get(context.Background(), "nope.jpg")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestLocalStorage_RejectsPathTraversal(t *testing.T) {
	ls, _ := newTestLocal(t)
	ctx := context.Background()

	for _, key := range []string{"", "..", "a/b.jpg", `a\b.jpg`, "../escape.jpg"} {
		_, err := ls.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{})
		assert.Error(t, err, "key %q should be rejected", key)

		_, _, err = ls.Get(ctx, key)
		assert.Error(t, err, "key %q should be rejected", key)
	}
}

func TestLocalStorage_PutDuplicateKey(t *testing.T) {
	ls, _ := newTestLocal(t)
	ctx := context.Background()

	_, err := ls.Put(ctx, "dup.jpg", strings.NewReader("x"), PutObjectOptions{})
	require.NoError(t, err)

	_, err = ls.Put(ctx, "dup.jpg", strings.NewReader("y"), PutObjectOptions{})
	assert.Error(t, err)
}

func TestLocalStorage_Delete(t *testing.T) {
	ls, _ := newTestLocal(t)
	ctx := context.Background()

	_, err := ls.Put(ctx, "gone.jpg", strings.NewReader("x"), PutObjectOptions{})
	require.NoError(t, err)

	assert.NoError(t, ls.Delete(ctx, "gone.jpg"))

	_, _, err = ls.Get(ctx, "gone.jpg")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting a missing key is not an error
	assert.NoError(t, ls.Delete(ctx, "gone.jpg"))
}
