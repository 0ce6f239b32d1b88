package idxgo

import (
	"log/slog"

	"github.com/hupe1980/idxgo/codec"
	"github.com/hupe1980/idxgo/fibercache"
	"github.com/hupe1980/idxgo/resource"
)

type options struct {
	cache              fibercache.Cache
	codec              codec.Codec
	partitionEntries   int
	prefetchWorkers    int
	metricsCollector   MetricsCollector
	logger             *Logger
	resourceController *resource.Controller
	shuttingDown       func() bool
}

// Option configures Reader behavior.
type Option func(*options)

// WithCache configures the span cache all section reads go through.
// An injected cache is owned by the caller and is not closed by the Reader;
// share one cache across readers to dedupe reads process-wide.
//
// If nil is passed (or the option is omitted), the Reader creates a private
// LRU cache of DefaultCacheBytes and closes it on Close.
func WithCache(c fibercache.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithCodec configures the codec used to decompress footer, node and
// partition reads. It must match the codec the file was written with.
//
// If nil is passed (the default), sections are served as stored. The
// legacy ReadRowIDListPart path never applies the codec.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithRowIDPartitionEntries configures the number of row-id entries per
// partition. It must match the partitioning the callers of
// ReadRowIDListPartition agreed on; all cache keys derive from it.
//
// If n <= 0, DefaultRowIDPartitionEntries is used.
func WithRowIDPartitionEntries(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultRowIDPartitionEntries
		}
		o.partitionEntries = n
	}
}

// WithPrefetchWorkers configures how many partitions Prefetch fetches
// concurrently. If n <= 0, the default of 4 is used.
func WithPrefetchWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = defaultPrefetchWorkers
		}
		o.prefetchWorkers = n
	}
}

// WithResourceController configures a shared resource controller. The
// Reader charges prefetch work against its background-worker and IO
// budgets, and a Reader-created default cache uses it for admission.
//
// Pass nil (the default) for unbounded operation.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resourceController = rc
	}
}

// WithShutdownCheck configures the predicate consulted when releasing the
// underlying blob fails: if it reports true the failure is discarded,
// otherwise it is logged as a warning. ShutdownFlag.Check is the intended
// value.
//
// The default predicate always reports false.
func WithShutdownCheck(fn func() bool) Option {
	return func(o *options) {
		o.shuttingDown = fn
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &idxgo.BasicMetricsCollector{}
//	r := idxgo.NewReader(store, "index.bin", idxgo.WithMetricsCollector(metrics))
//	// ... use r ...
//	stats := metrics.GetStats()
//	fmt.Printf("Reads: %d, Avg latency: %dns\n", stats.ReadCount, stats.ReadAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := idxgo.NewJSONLogger(slog.LevelInfo)
//	r := idxgo.NewReader(store, "index.bin", idxgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		partitionEntries: DefaultRowIDPartitionEntries,
		prefetchWorkers:  defaultPrefetchWorkers,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
