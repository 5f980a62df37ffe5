package taxcache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTaxService struct {
	mu     sync.Mutex
	calls  int
	RateFn func(ctx context.Context, country string) (decimal.Decimal, error)
}

func (s *stubTaxService) Rate(ctx context.Context, country string) (decimal.Decimal, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.RateFn != nil {
		return s.RateFn(ctx, country)
	}
	return decimal.RequireFromString("0.20"), nil
}

func (s *stubTaxService) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRate_CachesWithinTTL(t *testing.T) {
	inner := &stubTaxService{}
	cache := NewCachedTaxService(inner, 5*time.Minute, testLogger())

	first, err := cache.Rate(context.Background(), "FR")
	require.NoError(t, err)

	second, err := cache.Rate(context.Background(), "FR")
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, inner.Calls())
	assert.Equal(t, int64(1), cache.RealCalls())
}

func TestRate_NormalizesCountryCode(t *testing.T) {
	inner := &stubTaxService{}
	cache := NewCachedTaxService(inner, 5*time.Minute, testLogger())

	_, err := cache.Rate(context.Background(), "fr")
	require.NoError(t, err)
	_, err = cache.Rate(context.Background(), "FR")
	require.NoError(t, err)
	_, err = cache.Rate(context.Background(), "Fr")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.Calls())
}

func TestRate_RefreshesAfterExpiry(t *testing.T) {
	inner := &stubTaxService{}
	cache := NewCachedTaxService(inner, 5*time.Minute, testLogger())

	now := time.Now()
	cache.now = func() time.Time { return now }

	_, err := cache.Rate(context.Background(), "US")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cache.RealCalls())

	// Still inside the TTL.
	now = now.Add(4 * time.Minute)
	_, err = cache.Rate(context.Background(), "US")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cache.RealCalls())

	// Past the TTL: exactly one more real call.
	now = now.Add(2 * time.Minute)
	_, err = cache.Rate(context.Background(), "US")
	require.NoError(t, err)
	assert.Equal(t, int64(2), cache.RealCalls())
}

func TestRate_ErrorsAreNotCached(t *testing.T) {
	boom := errors.New("tax api down")
	inner := &stubTaxService{
		RateFn: func(_ context.Context, _ string) (decimal.Decimal, error) {
			return decimal.Zero, boom
		},
	}
	cache := NewCachedTaxService(inner, 5*time.Minute, testLogger())

	_, err := cache.Rate(context.Background(), "FR")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(0), cache.RealCalls())

	// The failure left the cache empty, so a recovered service is
	// consulted again.
	inner.RateFn = nil
	rate, err := cache.Rate(context.Background(), "FR")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.20")))
	assert.Equal(t, int64(1), cache.RealCalls())
}

func TestRate_ConcurrentLookups(t *testing.T) {
	inner := &stubTaxService{}
	cache := NewCachedTaxService(inner, 5*time.Minute, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Rate(context.Background(), "FR")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// A stampede may duplicate real calls but never more than one per
	// goroutine, and subsequent lookups are all hits.
	require.LessOrEqual(t, inner.Calls(), 20)
	before := cache.RealCalls()
	_, err := cache.Rate(context.Background(), "FR")
	require.NoError(t, err)
	assert.Equal(t, before, cache.RealCalls())
}

func TestSweep_RemovesExpiredEntries(t *testing.T) {
	inner := &stubTaxService{}
	cache := NewCachedTaxService(inner, 5*time.Minute, testLogger())

	now := time.Now()
	cache.now = func() time.Time { return now }

	_, err := cache.Rate(context.Background(), "FR")
	require.NoError(t, err)
	_, err = cache.Rate(context.Background(), "US")
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	cache.sweep()

	cache.mu.Lock()
	remaining := len(cache.entries)
	cache.mu.Unlock()
	assert.Equal(t, 0, remaining)
}
