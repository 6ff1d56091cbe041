package storage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real *multipart.FileHeader by writing and re-reading a
// multipart form, the same shape Fiber hands to handlers.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	files := form.File["files"]
	require.Len(t, files, 1)
	return files[0]
}

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(fileHeader(t, "cover.png", []byte("png-bytes")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, URLPrefix+"/"), "ref %q", ref)
	assert.True(t, strings.HasSuffix(ref, ".png"), "ref %q", ref)

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, URLPrefix+"/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestDiskStoreUniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(fileHeader(t, "cover.jpg", []byte("a")))
	require.NoError(t, err)
	second, err := store.Save(fileHeader(t, "cover.jpg", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDiskStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := NewDiskStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(store.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
