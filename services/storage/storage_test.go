package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customeros/mailpdf/interfaces"
	mperrors "github.com/customeros/mailpdf/internal/errors"
)

// exerciseStorage runs the behaviour every backend shares.
func exerciseStorage(t *testing.T, s interfaces.StorageService) {
	t.Helper()
	ctx := context.Background()

	id, key, err := NewOutputKey()
	require.NoError(t, err)
	assert.Len(t, id, 21)
	assert.Equal(t, id+".pdf", key)

	require.NoError(t, s.Upload(ctx, key, []byte("%PDF-1.4"), "application/pdf"))

	data, err := s.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)

	objects, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, key, objects[0].Key)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Download(ctx, key)
	assert.ErrorIs(t, err, mperrors.ErrOutputNotFound)

	// deleting twice is not an error
	require.NoError(t, s.Delete(ctx, key))

	for _, bad := range []string{"", "..", "../secret.pdf", "a/b.pdf", `a\b.pdf`} {
		_, err = s.Download(ctx, bad)
		assert.ErrorIs(t, err, mperrors.ErrOutputNotFound, bad)
		assert.Error(t, s.Upload(ctx, bad, []byte("x"), "application/pdf"), bad)
	}
}

func TestLocalStorageService(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	s, err := NewLocalStorageService(dir)
	require.NoError(t, err)

	exerciseStorage(t, s)
}

func TestLocalStorageService_ListSkipsTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorageService(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".upload-123"), []byte("partial"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o750))
	require.NoError(t, s.Upload(context.Background(), "abc.pdf", []byte("pdf"), "application/pdf"))

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "abc.pdf"), old, old))

	objects, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "abc.pdf", objects[0].Key)
	assert.Equal(t, int64(3), objects[0].Size)
	assert.WithinDuration(t, old, objects[0].ModifiedAt, time.Second)
}

func TestOutputKey(t *testing.T) {
	assert.Equal(t, "V1StGXR8_Z5jdHi6B-myT.pdf", OutputKey("V1StGXR8_Z5jdHi6B-myT"))
	assert.NoError(t, validateKey("abc.pdf"))
	assert.Error(t, validateKey("a..b"))
}
