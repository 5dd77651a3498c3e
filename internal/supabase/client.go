package supabase

import (
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"
	"inspection-report/internal/config"
)

// Client holds the project-level Supabase handle. Creating it validates the
// project URL and key before any blob is written.
type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(strings.TrimSuffix(cfg.SupabaseURL, "/"), cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// Storage returns a client for the configured report bucket. It shares the
// project handle's storage connection.
func (c *Client) Storage() (*StorageClient, error) {
	return newStorageClient(c.Supabase.Storage, c.Config.SupabaseURL, c.Config.SupabaseStorageBucket)
}
