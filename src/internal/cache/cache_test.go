package cache_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/rinq/userstore-go/src/internal/cache"
)

var _ = Describe("Cache", func() {
	var subject *cache.Cache[int]

	BeforeEach(func() {
		subject = cache.New[int](2, 0)
	})

	It("returns stored entries", func() {
		subject.Put("a", 1)

		v, ok := subject.Get("a")

		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))
	})

	It("overwrites existing entries", func() {
		subject.Put("a", 1)
		subject.Put("a", 2)

		v, _ := subject.Get("a")

		Expect(v).To(Equal(2))
		Expect(subject.Len()).To(Equal(1))
	})

	It("evicts entries", func() {
		subject.Put("a", 1)
		subject.Evict("a")
		subject.Evict("b")

		_, ok := subject.Get("a")

		Expect(ok).To(BeFalse())
	})

	It("reclaims the least recently used entry at capacity", func() {
		subject.Put("a", 1)
		subject.Put("b", 2)
		subject.Get("a")
		subject.Put("c", 3)

		_, ok := subject.Get("b")

		Expect(ok).To(BeFalse())
		Expect(subject.Len()).To(Equal(2))
	})

	It("reclaims entries after their time-to-live", func() {
		subject = cache.New[int](2, 20*time.Millisecond)
		subject.Put("a", 1)

		Eventually(func() bool {
			_, ok := subject.Get("a")
			return ok
		}).Should(BeFalse())
	})
})
