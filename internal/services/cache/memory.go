package cache

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

const sweepInterval = time.Minute

// MemoryCache is an in-process cache bounded by entry count. When full, the
// entry closest to expiry is evicted first.
type MemoryCache struct {
	mu         sync.RWMutex
	items      map[string]*cacheItem
	maxEntries int
	defaultTTL time.Duration

	hits, misses, sets, evictions atomic.Int64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

type cacheItem struct {
	value  []byte
	expiry time.Time
}

// NewMemoryCache creates a cache holding at most maxEntries values
// (unbounded when <= 0). defaultTTL <= 0 means 30 minutes.
func NewMemoryCache(maxEntries int, defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = 30 * time.Minute
	}
	mc := &MemoryCache{
		items:      make(map[string]*cacheItem),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		stopCh:     make(chan struct{}),
	}

	mc.wg.Add(1)
	go mc.cleanupExpired()

	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	item, exists := mc.items[key]
	mc.mu.RUnlock()

	if !exists || time.Now().After(item.expiry) {
		mc.misses.Add(1)
		return nil, false
	}

	mc.hits.Add(1)
	return item.value, true
}

// Set stores a value in the cache
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = mc.defaultTTL
	}

	mc.mu.Lock()
	if _, exists := mc.items[key]; !exists {
		mc.makeRoomLocked(time.Now())
	}
	mc.items[key] = &cacheItem{value: value, expiry: time.Now().Add(ttl)}
	mc.mu.Unlock()

	mc.sets.Add(1)
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.items, key)
	mc.mu.Unlock()
	return nil
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() CacheStats {
	mc.mu.RLock()
	entries := len(mc.items)
	mc.mu.RUnlock()

	return CacheStats{
		Hits:       mc.hits.Load(),
		Misses:     mc.misses.Load(),
		Sets:       mc.sets.Load(),
		Evictions:  mc.evictions.Load(),
		Entries:    entries,
		MaxEntries: mc.maxEntries,
	}
}

// Stop ends the background sweep. It is safe to call more than once.
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

func (mc *MemoryCache) cleanupExpired() {
	defer mc.wg.Done()
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			mc.mu.Lock()
			mc.removeExpiredLocked(now)
			mc.mu.Unlock()
		case <-mc.stopCh:
			return
		}
	}
}

func (mc *MemoryCache) removeExpiredLocked(now time.Time) int {
	removed := 0
	for key, item := range mc.items {
		if now.After(item.expiry) {
			delete(mc.items, key)
			removed++
		}
	}
	mc.evictions.Add(int64(removed))
	return removed
}

// makeRoomLocked frees one slot for a new key
func (mc *MemoryCache) makeRoomLocked(now time.Time) {
	if mc.maxEntries <= 0 || len(mc.items) < mc.maxEntries {
		return
	}
	if mc.removeExpiredLocked(now) > 0 {
		return
	}

	var oldestKey string
	var oldest time.Time
	for key, item := range mc.items {
		if oldestKey == "" || item.expiry.Before(oldest) {
			oldestKey, oldest = key, item.expiry
		}
	}
	delete(mc.items, oldestKey)
	mc.evictions.Add(1)
}

// GetJSON decodes a cached value into dst. A value that no longer decodes
// is dropped and reported as a miss.
func GetJSON(ctx context.Context, c Cache, key string, dst any) bool {
	raw, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		_ = c.Delete(ctx, key)
		return false
	}
	return true
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, raw, ttl)
}
