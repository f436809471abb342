// Package resource bounds what catalog loading may consume at once: memory
// held by fetched files, concurrent fetches, and read throughput.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes caps the bytes of fetched catalog data held before it
	// is applied. If 0, usage is only tracked.
	MemoryLimitBytes int64

	// MaxFetches is the maximum number of concurrent fetches.
	// If 0, defaults to 1.
	MaxFetches int64

	// IOLimitBytesPerSec is the maximum read throughput. If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller enforces a Config. A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	fetchSem *semaphore.Weighted

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxFetches <= 0 {
		cfg.MaxFetches = 1
	}

	c := &Controller{
		cfg:      cfg,
		fetchSem: semaphore.NewWeighted(cfg.MaxFetches),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the effective limits.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireMemory reserves bytes, blocking until they fit under the limit or
// ctx is canceled. A request larger than the whole limit is clamped to it so
// a single oversized file can still load alone.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) (int64, error) {
	if c == nil || bytes <= 0 {
		return 0, nil
	}
	if c.memSem != nil {
		bytes = min(bytes, c.cfg.MemoryLimitBytes)
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return 0, err
		}
	}
	c.memUsed.Add(bytes)
	return bytes, nil
}

// TryAcquireMemory reserves bytes without blocking.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil || bytes <= 0 {
		return true
	}
	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return false
	}
	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory returns bytes reserved by AcquireMemory or TryAcquireMemory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the bytes currently reserved.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireFetch reserves a fetch slot, blocking while all are busy.
func (c *Controller) AcquireFetch(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.fetchSem.Acquire(ctx, 1)
}

// TryAcquireFetch reserves a fetch slot without blocking.
func (c *Controller) TryAcquireFetch() bool {
	if c == nil {
		return true
	}
	return c.fetchSem.TryAcquire(1)
}

// ReleaseFetch releases a fetch slot.
func (c *Controller) ReleaseFetch() {
	if c == nil {
		return
	}
	c.fetchSem.Release(1)
}

// AcquireIO waits until the IO limit allows n more bytes.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil || n <= 0 {
		return nil
	}
	// WaitN rejects requests above the burst; split them.
	burst := c.ioLimiter.Burst()
	for n > 0 {
		step := min(n, burst)
		if err := c.ioLimiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
