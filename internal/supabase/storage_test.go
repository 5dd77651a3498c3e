package supabase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inspection-report/internal/config"
	"inspection-report/internal/supabase"
)

func TestStorageClient_GetPublicURL(t *testing.T) {
	client, err := supabase.NewStorageClient("https://proj.supabase.co/", "key", "inspection-reports")
	require.NoError(t, err)

	got := client.GetPublicURL("records/123/의자_0301_1030.xlsx")
	assert.Equal(t,
		"https://proj.supabase.co/storage/v1/object/public/inspection-reports/records/123/%EC%9D%98%EC%9E%90_0301_1030.xlsx",
		got)
}

func TestNewStorageClient_RequiresBucket(t *testing.T) {
	_, err := supabase.NewStorageClient("https://proj.supabase.co", "key", "")
	assert.Error(t, err)
}

func TestClient_Storage(t *testing.T) {
	cfg := &config.Config{
		SupabaseURL:            "https://proj.supabase.co",
		SupabasePublishableKey: "key",
		SupabaseStorageBucket:  "reports",
	}
	client, err := supabase.NewClient(cfg)
	require.NoError(t, err)

	storage, err := client.Storage()
	require.NoError(t, err)
	assert.Contains(t, storage.GetPublicURL("a.jpg"), "/public/reports/a.jpg")
}
