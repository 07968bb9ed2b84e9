package cache

import "time"

// AttributeCache maps a user name to the complete set of that user's
// attributes.
type AttributeCache struct {
	entries *Cache[map[string]string]
}

// NewAttributeCache returns an empty attribute cache.
func NewAttributeCache(size int, ttl time.Duration) *AttributeCache {
	return &AttributeCache{
		entries: New[map[string]string](size, ttl),
	}
}

// Get returns the attributes of user. The returned map is a copy.
func (c *AttributeCache) Get(user string) (map[string]string, bool) {
	attrs, ok := c.entries.Get(user)
	if !ok {
		return nil, false
	}

	return clone(attrs), true
}

// Put stores the complete set of attributes of user.
func (c *AttributeCache) Put(user string, attrs map[string]string) {
	c.entries.Put(user, clone(attrs))
}

// Evict removes the attributes of user, if any.
func (c *AttributeCache) Evict(user string) {
	c.entries.Evict(user)
}

// Len returns the number of entries in the cache.
func (c *AttributeCache) Len() int {
	return c.entries.Len()
}

func clone(attrs map[string]string) map[string]string {
	c := make(map[string]string, len(attrs))
	for k, v := range attrs {
		c[k] = v
	}

	return c
}
