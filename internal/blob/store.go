// Package blob stores uploaded image files and serves back public URLs.
package blob

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Size limits in bytes.
const (
	MaxArtworkSize = 10 << 20
	MaxAvatarSize  = 5 << 20
)

var extByMIME = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// Store persists uploaded blobs and resolves public URLs for them.
type Store interface {
	// Put stores the content under a generated key within the prefix and
	// returns the public URL. The content type is sniffed, not trusted
	// from the client.
	Put(prefix string, r io.Reader, size int64, maxSize int64) (string, error)
	// Remove deletes a blob previously returned by Put. Unknown URLs are
	// a no-op.
	Remove(url string) error
}

// DiskStore writes blobs under a root directory and serves them from a
// base URL mapped to that directory.
type DiskStore struct {
	Root    string
	BaseURL string
}

// NewDiskStore creates the root directory if needed.
func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{Root: root, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *DiskStore) Put(prefix string, r io.Reader, size int64, maxSize int64) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("empty upload")
	}
	if size > maxSize {
		return "", fmt.Errorf("file exceeds the %dMB limit", maxSize>>20)
	}

	// Sniff the real content type from the first bytes.
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	ext, ok := extByMIME[http.DetectContentType(head)]
	if !ok {
		return "", fmt.Errorf("unsupported image type, use JPEG, PNG, or GIF")
	}

	key, err := randomKey()
	if err != nil {
		return "", err
	}
	name := key + ext

	dir := filepath.Join(s.Root, prefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(head); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	// LimitReader guards against clients lying about the declared size.
	if _, err := io.Copy(f, io.LimitReader(r, maxSize-int64(len(head)))); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.BaseURL + "/" + prefix + "/" + name, nil
}

func (s *DiskStore) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, s.BaseURL+"/")
	if !ok {
		return nil
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, rel))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func randomKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate file key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
