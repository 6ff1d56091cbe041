// Package storage stores uploaded cover files on disk. Files get a unique
// name and are referenced on the post as "uploads/<name>", the path the
// static route serves them under.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is the path prefix stored on posts and served statically.
const URLPrefix = "uploads"

// DiskStore writes uploaded files into a single directory.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures dir exists and returns a store writing into it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a unique name and returns its
// reference path ("uploads/<name>").
func (s *DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uniqueName(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return URLPrefix + "/" + name, nil
}

// uniqueName keeps the original extension and prefixes a timestamp plus a
// short random suffix so concurrent uploads never collide.
func uniqueName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
