package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"social-service/internal/logger"
)

// Storage persists uploaded files and hands back a path relative to its root.
type Storage interface {
	Save(fileHeader *multipart.FileHeader, subDir string) (string, error)
	Delete(relPath string) error
	URL(relPath string) string
}

// LocalStorage stores files under a directory on the local filesystem.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage ensures basePath exists. baseURL is the prefix the files are
// served under.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("local storage directory ensured")
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save copies the upload under subDir with a random file name and returns
// the relative path.
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subDir string) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(ls.basePath, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create subdirectory: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	dstPath := filepath.Join(dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("save file content: %w", err)
	}

	return path.Join(filepath.ToSlash(subDir), name), nil
}

// Delete removes a previously saved file. Missing files are not an error.
func (ls *LocalStorage) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	full := filepath.Join(ls.basePath, filepath.FromSlash(path.Clean("/"+relPath)))
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("path", full).Msg("failed to delete stored file")
		return err
	}
	return nil
}

// URL returns the public URL of a stored file.
func (ls *LocalStorage) URL(relPath string) string {
	return ls.baseURL + "/" + relPath
}
