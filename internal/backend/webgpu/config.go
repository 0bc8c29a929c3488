package webgpu

import "sync"

// Config holds tunables applied to compute contexts when they are created.
type Config struct {
	// MaxBatchSize is the number of recorded command buffers after which
	// pending work is submitted without waiting for a readback.
	// 0 disables the limit.
	MaxBatchSize int
	// PoolSize is the maximum number of idle buffers kept per size class.
	PoolSize int
}

// DefaultConfig returns the configuration used when none was set.
func DefaultConfig() Config {
	return Config{
		MaxBatchSize: 64,
		PoolSize:     maxPoolSize,
	}
}

var (
	defaultConfig   = DefaultConfig()
	defaultConfigMu sync.RWMutex
)

// SetDefaultConfig replaces the configuration used by contexts created
// afterwards. Existing contexts keep their configuration.
func SetDefaultConfig(cfg Config) {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = maxPoolSize
	}
	if cfg.MaxBatchSize < 0 {
		cfg.MaxBatchSize = 0
	}
	defaultConfigMu.Lock()
	defaultConfig = cfg
	defaultConfigMu.Unlock()
}

func currentConfig() Config {
	defaultConfigMu.RLock()
	defer defaultConfigMu.RUnlock()
	return defaultConfig
}
