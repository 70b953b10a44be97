package filestorage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, name, body string) *multipart.FileHeader {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func TestLocalStorageSaveAndDelete(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "/uploads/")
	require.NoError(t, err)

	rel, err := storage.Save(uploadHeader(t, "Cat.PNG", "meow"), "post_images")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "post_images/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	content, err := os.ReadFile(filepath.Join(base, rel))
	require.NoError(t, err)
	assert.Equal(t, "meow", string(content))
	assert.Equal(t, "/uploads/"+rel, storage.URL(rel))

	require.NoError(t, storage.Delete(rel))
	_, err = os.Stat(filepath.Join(base, rel))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, storage.Delete(rel))
}

func TestLocalStorageDeleteStaysInsideBase(t *testing.T) {
	base := t.TempDir()
	outside := filepath.Join(filepath.Dir(base), "keep.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o600))
	t.Cleanup(func() { os.Remove(outside) })

	storage, err := NewLocalStorage(base, "/uploads")
	require.NoError(t, err)
	require.NoError(t, storage.Delete("../keep.txt"))

	_, err = os.Stat(outside)
	assert.NoError(t, err)
}
