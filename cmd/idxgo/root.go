package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/idxgo"
	"github.com/hupe1980/idxgo/blobstore"
	"github.com/hupe1980/idxgo/blobstore/s3"
	"github.com/hupe1980/idxgo/codec"
	"github.com/hupe1980/idxgo/fibercache"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	ConfigPath string
	Verbose    bool
}

// createRootCmd creates the root command.
func createRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:          "idxgo",
		Short:        "Inspect self-describing index files",
		Long:         "Inspect self-describing index files, stored locally or on S3.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "",
		"Path to a YAML config file. Reader defaults are used when omitted.")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false,
		"Log every section read to stderr.")

	cmd.AddCommand(
		createInspectCmd(flags),
		createVerifyCmd(flags),
		createRowIDsCmd(flags),
		createFooterCmd(flags),
	)

	return cmd
}

// openReader resolves location to a blob store and opens a reader on it.
// The returned cleanup closes the reader and its cache.
func openReader(ctx context.Context, flags *rootFlags, location string) (*idxgo.Reader, func(), error) {
	cfg, err := LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	store, name, err := resolveStore(ctx, cfg, location)
	if err != nil {
		return nil, nil, err
	}

	optFns := []idxgo.Option{
		idxgo.WithRowIDPartitionEntries(cfg.PartitionEntries),
		idxgo.WithPrefetchWorkers(cfg.PrefetchWorkers),
		idxgo.WithShutdownCheck(shutdown.Check),
	}

	var cache *fibercache.LRU
	if cfg.CacheMB > 0 {
		cache = fibercache.NewLRU(int64(cfg.CacheMB)<<20, nil)
		optFns = append(optFns, idxgo.WithCache(cache))
	}

	if cfg.Codec != "" {
		c, ok := codec.ByName(cfg.Codec)
		if !ok {
			return nil, nil, fmt.Errorf("unknown codec %q", cfg.Codec)
		}

		optFns = append(optFns, idxgo.WithCodec(c))
	}

	if flags.Verbose {
		optFns = append(optFns, idxgo.WithLogger(idxgo.NewTextLogger(slog.LevelDebug)))
	}

	r, err := idxgo.Open(ctx, store, name, optFns...)
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}

		return nil, nil, err
	}

	cleanup := func() {
		_ = r.Close()
		if cache != nil {
			_ = cache.Close()
		}
	}

	return r, cleanup, nil
}

// resolveStore maps a location argument to a blob store and the blob name
// within it. Locations of the form s3://bucket/key open an S3 store; anything
// else is treated as a local file path.
func resolveStore(ctx context.Context, cfg Config, location string) (blobstore.BlobStore, string, error) {
	if after, ok := strings.CutPrefix(location, "s3://"); ok {
		bucket, key, ok := strings.Cut(after, "/")
		if !ok || bucket == "" || key == "" {
			return nil, "", fmt.Errorf("invalid s3 location %q, want s3://bucket/key", location)
		}

		var s3Opts []func(*s3.Options)
		if cfg.S3.Region != "" {
			s3Opts = append(s3Opts, s3.WithRegion(cfg.S3.Region))
		}

		if cfg.S3.Prefix != "" {
			s3Opts = append(s3Opts, s3.WithPrefix(cfg.S3.Prefix))
		}

		store, err := s3.New(ctx, bucket, s3Opts...)
		if err != nil {
			return nil, "", err
		}

		return store, key, nil
	}

	dir, name := filepath.Split(location)
	if dir == "" {
		dir = "."
	}

	return blobstore.NewLocalStore(dir), name, nil
}
