package resource

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})
	ctx := context.Background()

	got, err := c.AcquireMemory(ctx, 50)
	require.NoError(t, err)
	assert.EqualValues(t, 50, got)

	_, err = c.AcquireMemory(ctx, 40)
	require.NoError(t, err)
	assert.EqualValues(t, 90, c.MemoryUsage())

	assert.False(t, c.TryAcquireMemory(20))
	assert.EqualValues(t, 90, c.MemoryUsage())

	tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = c.AcquireMemory(tctx, 20)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.ReleaseMemory(50)
	assert.EqualValues(t, 40, c.MemoryUsage())

	_, err = c.AcquireMemory(ctx, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 60, c.MemoryUsage())
}

func TestController_OversizedRequestIsClamped(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	got, err := c.AcquireMemory(context.Background(), 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 100, got)
	assert.False(t, c.TryAcquireMemory(1))

	c.ReleaseMemory(got)
	assert.Zero(t, c.MemoryUsage())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	got, err := c.AcquireMemory(context.Background(), 1000)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, got)

	c.ReleaseMemory(500)
	assert.EqualValues(t, 500, c.MemoryUsage())
}

func TestController_Fetches(t *testing.T) {
	c := NewController(Config{MaxFetches: 2})
	ctx := context.Background()

	require.NoError(t, c.AcquireFetch(ctx))
	require.NoError(t, c.AcquireFetch(ctx))
	assert.False(t, c.TryAcquireFetch())

	c.ReleaseFetch()
	assert.True(t, c.TryAcquireFetch())
	assert.EqualValues(t, 2, c.Config().MaxFetches)
}

func TestController_Nil(t *testing.T) {
	var c *Controller
	ctx := context.Background()

	got, err := c.AcquireMemory(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.True(t, c.TryAcquireMemory(10))
	c.ReleaseMemory(10)
	require.NoError(t, c.AcquireFetch(ctx))
	c.ReleaseFetch()
	require.NoError(t, c.AcquireIO(ctx, 1<<20))
	assert.Zero(t, c.MemoryUsage())
}

func TestController_IOLimit(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// Larger than the burst; must be split rather than rejected.
	require.NoError(t, c.AcquireIO(context.Background(), 1<<20+10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.AcquireIO(ctx, 1<<20))
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	src := strings.Repeat("x", 4096)

	var out bytes.Buffer
	_, err := io.Copy(&out, NewRateLimitedReader(context.Background(), strings.NewReader(src), c))
	require.NoError(t, err)
	assert.Equal(t, src, out.String())

	require.NoError(t, c.Throttle(context.Background(), []byte("abc")))
}
