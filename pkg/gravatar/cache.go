package gravatar

import (
	"container/list"
	"image"
	"strconv"
	"sync"
)

type key struct {
	email string
	size  int
}

func (k key) String() string {
	return k.email + "@" + strconv.Itoa(k.size)
}

type entry struct {
	key key
	img image.Image // nil records a miss
}

// cache is a small LRU keyed by (email, size). Misses are cached too.
type cache struct {
	mu    sync.Mutex
	limit int
	order *list.List
	items map[key]*list.Element
}

func newCache(limit int) *cache {
	return &cache{
		limit: max(limit, 1),
		order: list.New(),
		items: make(map[key]*list.Element),
	}
}

func (c *cache) get(k key) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[k]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).img, true
}

func (c *cache) put(k key, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[k]; ok {
		el.Value.(*entry).img = img
		c.order.MoveToFront(el)
		return
	}

	c.items[k] = c.order.PushFront(&entry{key: k, img: img})
	for c.order.Len() > c.limit {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
