package watcher

// recentCache is a bounded FIFO of dedupe keys for one provider. Each
// cache is owned by that provider's poll cycle; cycles never overlap, so
// no locking is needed here.
type recentCache struct {
	limit int
	order []string
	seen  map[string]bool
}

func newRecentCache(limit int) *recentCache {
	if limit <= 0 {
		limit = 1
	}
	return &recentCache{limit: limit, seen: make(map[string]bool)}
}

func (c *recentCache) Contains(key string) bool {
	return c.seen[key]
}

// Add appends keys in order and trims the oldest entries beyond the
// bound. Keys already present are not re-appended.
func (c *recentCache) Add(keys ...string) {
	for _, key := range keys {
		if c.seen[key] {
			continue
		}
		c.seen[key] = true
		c.order = append(c.order, key)
	}
	for len(c.order) > c.limit {
		delete(c.seen, c.order[0])
		c.order = c.order[1:]
	}
}

func (c *recentCache) Len() int { return len(c.order) }
