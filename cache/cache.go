package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Cache holds live dashboard sessions in memory. Entries expire after the
// idle TTL and are never written anywhere else.
type Cache struct {
	cache *cache.Cache
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *Cache) SetDefault(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

// Touch re-stores an existing entry so its idle timer restarts.
func (c *Cache) Touch(key string) bool {
	v, ok := c.cache.Get(key)
	if !ok {
		return false
	}
	c.cache.Set(key, v, cache.DefaultExpiration)
	return true
}

func (c *Cache) Delete(key string) {
	c.cache.Delete(key)
}

func (c *Cache) Count() int {
	return c.cache.ItemCount()
}

// OnEvicted registers fn for entries that expire or are deleted.
func (c *Cache) OnEvicted(fn func(key string, value interface{})) {
	c.cache.OnEvicted(fn)
}
