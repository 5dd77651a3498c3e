package blobstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inspection-report/internal/blobstore"
)

func TestLocalStore_PutAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := blobstore.NewLocalStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := s.Put("records/abc/photo1.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/blobs/records/abc/photo1.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "records", "abc", "photo1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, s.Delete("records/abc/photo1.jpg", "records/abc/missing.jpg"))
	_, err = os.Stat(filepath.Join(dir, "records", "abc", "photo1.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_StaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := blobstore.NewLocalStore(filepath.Join(dir, "blobs"), "http://x")
	require.NoError(t, err)

	_, err = s.Put("../../escape.txt", "text/plain", []byte("x"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "blobs", "escape.txt"))
	assert.NoError(t, err)

	_, err = s.Put("", "text/plain", []byte("x"))
	assert.Error(t, err)
}
