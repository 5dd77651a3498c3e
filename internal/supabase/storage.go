package supabase

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// StorageClient keeps report photos and workbooks in one Supabase bucket.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	return newStorageClient(storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil), baseURL, bucket)
}

func newStorageClient(client *storage.Client, supabaseURL, bucket string) (*StorageClient, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if client == nil {
		return nil, fmt.Errorf("storage client is required")
	}

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(supabaseURL, "/"),
	}, nil
}

// Put uploads data at storagePath, replacing any existing object, and
// returns the public URL.
func (s *StorageClient) Put(storagePath, contentType string, data []byte) (string, error) {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.GetPublicURL(storagePath), nil
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, escapePath(storagePath))
}

func (s *StorageClient) Delete(storagePaths ...string) error {
	if len(storagePaths) == 0 {
		return nil
	}
	_, err := s.client.RemoveFile(s.bucket, storagePaths)
	if err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
