package cache

import "sync"

// KeyedMutex provides mutual exclusion scoped to a key. Callers using distinct
// keys never contend.
type KeyedMutex struct {
	m     sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	sync.Mutex
	refs int
}

// Locker returns a locker for the mutex scoped to k.
func (km *KeyedMutex) Locker(k string) sync.Locker {
	return keyLocker{km, k}
}

// acquire returns the lock for k, creating it if necessary. The lock is not
// removed until a matching call to release().
func (km *KeyedMutex) acquire(k string) *keyedLock {
	km.m.Lock()
	defer km.m.Unlock()

	if km.locks == nil {
		km.locks = map[string]*keyedLock{}
	}

	l, ok := km.locks[k]
	if !ok {
		l = &keyedLock{}
		km.locks[k] = l
	}

	l.refs++
	return l
}

func (km *KeyedMutex) release(k string) {
	km.m.Lock()
	defer km.m.Unlock()

	l := km.locks[k]
	l.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(km.locks, k)
	}
}

type keyLocker struct {
	km *KeyedMutex
	k  string
}

func (l keyLocker) Lock() {
	l.km.acquire(l.k).Lock()
}

func (l keyLocker) Unlock() {
	l.km.release(l.k)
}
