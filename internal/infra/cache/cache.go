package cache

import (
	"sync"
	"time"
)

// Cache is a process-local TTL map. Good enough for rate-limit counters
// and QR codes; not a substitute for the database.
type Cache struct {
	storage sync.Map
}

func InitStorage() *Cache {
	return &Cache{}
}

// shared caches
var (
	OrderRateLimitsCache = InitStorage()
)

func (c *Cache) Set(k any, v any, expiration time.Duration) {
	c.storage.Store(k, v)
	go c.delByExp(k, v, expiration)
}

// sets value without expiration
func (c *Cache) SetNoExp(k any, v any) {
	c.storage.Store(k, v)
}

func (c *Cache) Del(k any) {
	c.storage.Delete(k)
}

func (c *Cache) Load(k any) any {
	v, _ := c.storage.Load(k)
	return v
}

func (c *Cache) LoadOrSet(k any, v any, expiration time.Duration) any {
	act, loaded := c.storage.LoadOrStore(k, v)
	if !loaded {
		go c.delByExp(k, act, expiration)
	}
	return act
}

func (c *Cache) delByExp(k any, v any, expiration time.Duration) {
	time.Sleep(expiration)
	cacheValue, ok := c.storage.Load(k)
	if !ok {
		return
	}
	if cacheValue != v { // value changed, a newer Set owns the key now
		return
	}
	c.storage.Delete(k)
}
