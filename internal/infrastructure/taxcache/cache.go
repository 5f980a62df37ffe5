package taxcache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
)

type entry struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

// CachedTaxService memoizes per-country tax rates in front of a real
// TaxService for a fixed TTL. Keys are normalized to upper case, so
// "fr" and "FR" share one entry. Expired entries are refreshed lazily
// on the next lookup; StartSweeper adds an optional background purge.
//
// Errors from the wrapped service propagate unchanged and are never
// cached. Concurrent misses for the same key may each hit the real
// service; the last write wins.
type CachedTaxService struct {
	inner  application.TaxService
	ttl    time.Duration
	logger *slog.Logger

	// now is swapped out by tests to control expiry.
	now func() time.Time

	mu        sync.Mutex
	entries   map[string]entry
	realCalls atomic.Int64
}

func NewCachedTaxService(inner application.TaxService, ttl time.Duration, logger *slog.Logger) *CachedTaxService {
	return &CachedTaxService{
		inner:   inner,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Rate returns the cached rate for the country when the entry is still
// live, otherwise consults the wrapped service exactly once and stores
// the result with a fresh expiry.
func (c *CachedTaxService) Rate(ctx context.Context, country string) (decimal.Decimal, error) {
	key := strings.ToUpper(country)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && e.expiresAt.After(c.now()) {
		c.mu.Unlock()
		c.logger.Debug("tax rate cache hit", "country", key)
		return e.rate, nil
	}
	c.mu.Unlock()

	c.logger.Debug("tax rate cache miss", "country", key)
	rate, err := c.inner.Rate(ctx, country)
	if err != nil {
		return decimal.Zero, err
	}
	c.realCalls.Add(1)

	c.mu.Lock()
	c.entries[key] = entry{rate: rate, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()

	return rate, nil
}

// RealCalls reports how many lookups reached the wrapped service.
func (c *CachedTaxService) RealCalls() int64 {
	return c.realCalls.Load()
}

// StartSweeper purges expired entries on the given interval until the
// context is cancelled. The cache works without it; expiry is already
// enforced on lookup.
func (c *CachedTaxService) StartSweeper(ctx context.Context, interval time.Duration) {
	c.logger.Info("tax cache sweeper started", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("tax cache sweeper stopping")
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *CachedTaxService) sweep() {
	cutoff := c.now()

	c.mu.Lock()
	var removed int
	for key, e := range c.entries {
		if !e.expiresAt.After(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	if removed > 0 {
		c.logger.Debug("swept expired tax rates", "removed", removed)
	}
}
