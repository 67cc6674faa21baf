package cache

import (
	"container/list"
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// TTLCache is a size-bounded LRU whose entries expire after a fixed lifetime.
type TTLCache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	now     func() time.Time
	order   *list.List
	items   map[string]*list.Element
}

func NewTTLCache[V any](maxSize int, ttl time.Duration) *TTLCache[V] {
	if maxSize <= 0 {
		maxSize = 1
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	return &TTLCache[V]{
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
		order:   list.New(),
		items:   make(map[string]*list.Element, maxSize),
	}
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.items[key]
	if !ok {
		return zero, false
	}
	ent := element.Value.(*ttlEntry[V])
	if c.now().After(ent.expiresAt) {
		c.remove(element)
		return zero, false
	}
	c.order.MoveToFront(element)
	return ent.value, true
}

func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if element, ok := c.items[key]; ok {
		ent := element.Value.(*ttlEntry[V])
		ent.value, ent.expiresAt = value, expiresAt
		c.order.MoveToFront(element)
		return
	}

	c.items[key] = c.order.PushFront(&ttlEntry[V]{key: key, value: value, expiresAt: expiresAt})
	for len(c.items) > c.maxSize {
		c.remove(c.order.Back())
	}
}

func (c *TTLCache[V]) Delete(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		if element, ok := c.items[key]; ok {
			c.remove(element)
		}
	}
}

func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *TTLCache[V]) remove(element *list.Element) {
	c.order.Remove(element)
	delete(c.items, element.Value.(*ttlEntry[V]).key)
}
