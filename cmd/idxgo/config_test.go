package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/idxgo"
	"github.com/hupe1980/idxgo/blobstore"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.CacheMB)
	assert.Equal(t, idxgo.DefaultRowIDPartitionEntries, cfg.PartitionEntries)
	assert.Empty(t, cfg.Codec)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idxgo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_mb: 8\ncodec: zstd\ns3:\n  region: eu-central-1\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.CacheMB)
	assert.Equal(t, "zstd", cfg.Codec)
	assert.Equal(t, "eu-central-1", cfg.S3.Region)

	// Unset fields keep their defaults.
	assert.Equal(t, idxgo.DefaultRowIDPartitionEntries, cfg.PartitionEntries)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestResolveStoreLocal(t *testing.T) {
	store, name, err := resolveStore(context.Background(), DefaultConfig(), filepath.Join("data", "orders.idx"))
	require.NoError(t, err)

	assert.IsType(t, &blobstore.LocalStore{}, store)
	assert.Equal(t, "orders.idx", name)
}

func TestResolveStoreBareName(t *testing.T) {
	store, name, err := resolveStore(context.Background(), DefaultConfig(), "orders.idx")
	require.NoError(t, err)

	assert.IsType(t, &blobstore.LocalStore{}, store)
	assert.Equal(t, "orders.idx", name)
}

func TestResolveStoreInvalidS3(t *testing.T) {
	for _, location := range []string{"s3://bucket-only", "s3:///key-only", "s3://"} {
		_, _, err := resolveStore(context.Background(), DefaultConfig(), location)
		assert.Error(t, err, location)
	}
}
