package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/idxgo"
)

// Config controls how the CLI opens index files. Every field is optional;
// zero values fall back to the reader defaults.
type Config struct {
	// CacheMB is the block cache capacity in megabytes.
	CacheMB int `yaml:"cache_mb"`

	// PartitionEntries is the number of row ids per partition. It must match
	// the value the file was written with.
	PartitionEntries int `yaml:"partition_entries"`

	// Codec names the compression applied to stored blocks: "raw", "lz4",
	// "zstd" or "snappy". Empty returns blocks as stored.
	Codec string `yaml:"codec"`

	// PrefetchWorkers bounds concurrent partition fetches during prefetch.
	PrefetchWorkers int `yaml:"prefetch_workers"`

	// S3 applies to s3://bucket/key locations.
	S3 S3Config `yaml:"s3"`
}

// S3Config carries settings for the S3 blob store.
type S3Config struct {
	// Region overrides the region from the environment and shared config.
	Region string `yaml:"region"`

	// Prefix is prepended to every key.
	Prefix string `yaml:"prefix"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		CacheMB:          64,
		PartitionEntries: idxgo.DefaultRowIDPartitionEntries,
	}
}

// LoadConfig reads a YAML config file, filling unset fields from
// DefaultConfig. An empty path returns DefaultConfig unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
