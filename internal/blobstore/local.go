// Package blobstore stores report blobs on the local filesystem when no
// Supabase project is configured. The server exposes the directory under
// URLPrefix.
package blobstore

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const URLPrefix = "/blobs"

type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (l *LocalStore) Dir() string {
	return l.dir
}

func (l *LocalStore) Put(storagePath, _ string, data []byte) (string, error) {
	full, err := l.resolve(storagePath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	return l.URL(storagePath), nil
}

func (l *LocalStore) Delete(storagePaths ...string) error {
	for _, p := range storagePaths {
		full, err := l.resolve(p)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete blob: %w", err)
		}
	}
	return nil
}

func (l *LocalStore) URL(storagePath string) string {
	parts := strings.Split(storagePath, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return l.baseURL + URLPrefix + "/" + strings.Join(parts, "/")
}

func (l *LocalStore) resolve(storagePath string) (string, error) {
	clean := filepath.Clean("/" + storagePath)
	if clean == "/" {
		return "", fmt.Errorf("invalid blob path %q", storagePath)
	}
	return filepath.Join(l.dir, clean), nil
}
