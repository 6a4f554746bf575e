// Package cache keeps the data provider's coin list between symbol lookups,
// in Redis when configured and in process memory otherwise.
package cache

import (
	"context"
	"sync"
	"time"

	"CryptoSentinel/internal/model"
)

// MemoryCache is an in-process coin list cache.
type MemoryCache struct {
	mu      sync.RWMutex
	coins   []model.Coin
	expires time.Time
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{now: time.Now}
}

func (c *MemoryCache) GetCoinList(_ context.Context) ([]model.Coin, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.coins == nil {
		return nil, false, nil
	}
	if !c.expires.IsZero() && !c.now().Before(c.expires) {
		return nil, false, nil
	}
	return c.coins, true, nil
}

// SetCoinList stores coins; a non-positive ttl never expires.
func (c *MemoryCache) SetCoinList(_ context.Context, coins []model.Coin, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.coins = coins
	c.expires = time.Time{}
	if ttl > 0 {
		c.expires = c.now().Add(ttl)
	}
	return nil
}

func (c *MemoryCache) Close() error { return nil }
