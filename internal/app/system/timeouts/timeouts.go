// Package timeouts provides the context deadlines used by admin handlers.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks
//   - Short: single-document reads
//   - Medium: one collection scan or a small batch
//   - Long: fan-out updates touching many collections
//   - Batch: full-database work such as duplicate scans and backups
package timeouts

import (
	"os"
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultBatch  = 120 * time.Second
)

// Config holds timeout values. Zero values are ignored by Configure.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Batch  time.Duration
}

var (
	mu  sync.RWMutex
	cur = defaults()
)

func defaults() Config {
	return Config{
		Ping:   DefaultPing,
		Short:  DefaultShort,
		Medium: DefaultMedium,
		Long:   DefaultLong,
		Batch:  DefaultBatch,
	}
}

func get(pick func(Config) time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return pick(cur)
}

func Ping() time.Duration   { return get(func(c Config) time.Duration { return c.Ping }) }
func Short() time.Duration  { return get(func(c Config) time.Duration { return c.Short }) }
func Medium() time.Duration { return get(func(c Config) time.Duration { return c.Medium }) }
func Long() time.Duration   { return get(func(c Config) time.Duration { return c.Long }) }
func Batch() time.Duration  { return get(func(c Config) time.Duration { return c.Batch }) }

// Configure overrides the non-zero values in cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	merge(&cur.Ping, cfg.Ping)
	merge(&cur.Short, cfg.Short)
	merge(&cur.Medium, cfg.Medium)
	merge(&cur.Long, cfg.Long)
	merge(&cur.Batch, cfg.Batch)
}

func merge(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

// Reset restores the defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cur = defaults()
}

// Current returns the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM,
// TIMEOUT_LONG and TIMEOUT_BATCH ("2s", "500ms", "2m"). Invalid or
// non-positive values are ignored. Returns how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	read := func(key string, dst *time.Duration) {
		v := os.Getenv(key)
		if v == "" {
			return
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			n++
		}
	}
	read("TIMEOUT_PING", &cfg.Ping)
	read("TIMEOUT_SHORT", &cfg.Short)
	read("TIMEOUT_MEDIUM", &cfg.Medium)
	read("TIMEOUT_LONG", &cfg.Long)
	read("TIMEOUT_BATCH", &cfg.Batch)
	Configure(cfg)
	return n
}
