package cache

import (
	"time"

	"github.com/rinq/userstore-go/src/internal/x/deferx"
)

// AuthCache maps a user name to the digest of the credential with which that
// user most recently authenticated successfully.
type AuthCache struct {
	entries *Cache[string]
	locks   KeyedMutex
}

// NewAuthCache returns an empty authentication cache.
func NewAuthCache(size int, ttl time.Duration) *AuthCache {
	return &AuthCache{
		entries: New[string](size, ttl),
	}
}

// Check returns true if the cached digest for user equals digest.
//
// If an entry exists for user but its digest differs it is evicted, and false
// is returned.
func (c *AuthCache) Check(user, digest string) bool {
	d, ok := c.entries.Get(user)
	if !ok {
		return false
	}

	if d == digest {
		return true
	}

	c.entries.Evict(user)
	return false
}

// Fill records a successful authentication of user with a credential that
// produces digest.
//
// The entry is only written if no entry exists for user. The check and the
// write are performed while holding a lock scoped to user.
func (c *AuthCache) Fill(user, digest string) bool {
	unlock := deferx.Lock(c.locks.Locker(user))
	defer unlock()

	if _, ok := c.entries.Get(user); ok {
		return false
	}

	c.entries.Put(user, digest)
	return true
}

// Evict removes the entry for user, if any.
func (c *AuthCache) Evict(user string) {
	c.entries.Evict(user)
}

// Len returns the number of entries in the cache.
func (c *AuthCache) Len() int {
	return c.entries.Len()
}
