package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// FileStore writes objects under Root using the {ownerId}/{filename}
// path convention and serves them from BaseURL.
type FileStore struct {
	Root    string
	BaseURL string
}

func NewFileStore(root, baseURL string) *FileStore {
	return &FileStore{Root: root, BaseURL: baseURL}
}

// SaveBytes stores data at {ownerId}/{filename} and returns the public URL
func (fs *FileStore) SaveBytes(ownerID uint, filename string, data []byte) (string, error) {
	destDir := filepath.Join(fs.Root, fmt.Sprintf("%d", ownerID))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(destDir, filename), data, 0644); err != nil {
		return "", err
	}
	return fs.PublicURL(ownerID, filename), nil
}

// SaveUploadedFile stores a multipart upload at {ownerId}/{timestamped name}
func (fs *FileStore) SaveUploadedFile(ownerID uint, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(fs.Root, fmt.Sprintf("%d", ownerID))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Unique filename to avoid collisions between uploads
	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + ext

	dst, err := os.Create(filepath.Join(destDir, newFilename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return fs.PublicURL(ownerID, newFilename), nil
}

// PublicURL returns the serving URL for a stored object
func (fs *FileStore) PublicURL(ownerID uint, filename string) string {
	return fmt.Sprintf("%s/%d/%s", fs.BaseURL, ownerID, filename)
}
