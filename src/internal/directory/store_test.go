package directory_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jmalloc/twelf/src/twelf"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rinq/userstore-go/src/internal/cache"
	. "github.com/rinq/userstore-go/src/internal/directory"
	"github.com/rinq/userstore-go/src/internal/metrics"
	"github.com/rinq/userstore-go/src/userstore"
)

var _ = Describe("store", func() {
	var (
		ctx       context.Context
		caller    *fakeCaller
		authCache *cache.AuthCache
		attrCache *cache.AttributeCache
		collector *metrics.Collectors
		subject   userstore.Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		caller = newFakeCaller()
		authCache = cache.NewAuthCache(10, time.Minute)
		attrCache = cache.NewAttributeCache(10, time.Minute)

		var err error
		collector, err = metrics.New(prometheus.NewRegistry())
		Expect(err).ShouldNot(HaveOccurred())

		subject = NewStore(
			caller,
			Config{
				Tenant:        "acme",
				Domain:        "WSO2",
				AnonymousUser: "anonymous",
				Attributes:    []string{"mail", "givenname"},
				Logger:        &twelf.StandardLogger{},
				Metrics:       collector,
			},
			authCache,
			attrCache,
		)
	})

	Describe("Authenticate", func() {
		It("returns true when the agent accepts the credential", func() {
			caller.values[userstore.Authenticate] = "SUCCESS"

			ok, err := subject.Authenticate(ctx, "bob", "secret")

			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(caller.Calls()).To(Equal([]call{
				{userstore.Authenticate, map[string]string{"username": "bob", "password": "secret"}},
			}))
		})

		It("returns false when the agent rejects the credential", func() {
			caller.values[userstore.Authenticate] = "FAILURE"

			ok, err := subject.Authenticate(ctx, "bob", "secret")

			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeFalse())
			Expect(authCache.Len()).To(Equal(0))
		})

		It("answers from the cache after a successful authentication", func() {
			caller.values[userstore.Authenticate] = "SUCCESS"

			_, err := subject.Authenticate(ctx, "bob", "secret")
			Expect(err).ShouldNot(HaveOccurred())

			ok, err := subject.Authenticate(ctx, "bob", "secret")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeTrue())

			Expect(caller.Calls()).To(HaveLen(1))
			Expect(testutil.ToFloat64(collector.CacheLookups.WithLabelValues(metrics.AuthCache, metrics.CacheHit))).To(Equal(1.0))
		})

		It("evicts the cached entry and asks the agent when the credential differs", func() {
			caller.values[userstore.Authenticate] = "SUCCESS"

			_, err := subject.Authenticate(ctx, "bob", "secret")
			Expect(err).ShouldNot(HaveOccurred())

			caller.values[userstore.Authenticate] = "FAILURE"

			ok, err := subject.Authenticate(ctx, "bob", "guess")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeFalse())

			Expect(caller.Calls()).To(HaveLen(2))
			Expect(authCache.Len()).To(Equal(0))
		})

		It("returns false and the error when the outcome can not be determined", func() {
			caller.err = userstore.TimeoutError{RequestType: userstore.Authenticate, Attempts: 3}

			ok, err := subject.Authenticate(ctx, "bob", "secret")

			Expect(ok).To(BeFalse())
			Expect(userstore.IsTimeout(err)).To(BeTrue())
			Expect(authCache.Len()).To(Equal(0))
		})

		It("returns a decode error when the result is not a string", func() {
			caller.values[userstore.Authenticate] = true

			ok, err := subject.Authenticate(ctx, "bob", "secret")

			Expect(ok).To(BeFalse())
			Expect(userstore.IsDecodeError(err)).To(BeTrue())
		})

		It("makes a single remote call for concurrent authentications with the same credential", func() {
			caller.values[userstore.Authenticate] = "SUCCESS"
			caller.release = make(chan struct{})

			var wg sync.WaitGroup
			results := make(chan bool, 5)

			for i := 0; i < 5; i++ {
				wg.Add(1)
				go func() {
					defer GinkgoRecover()
					defer wg.Done()

					ok, err := subject.Authenticate(ctx, "bob", "secret")
					Expect(err).ShouldNot(HaveOccurred())
					results <- ok
				}()
			}

			Eventually(func() int { return len(caller.Calls()) }).Should(Equal(1))
			time.Sleep(20 * time.Millisecond)
			close(caller.release)
			wg.Wait()
			close(results)

			for ok := range results {
				Expect(ok).To(BeTrue())
			}

			Expect(caller.Calls()).To(HaveLen(1))
			Expect(authCache.Len()).To(Equal(1))
		})

		It("completes a shared authentication when the caller that started it gives up", func() {
			caller.values[userstore.Authenticate] = "SUCCESS"
			caller.release = make(chan struct{})

			first, cancel := context.WithCancel(ctx)
			firstErr := make(chan error, 1)

			go func() {
				_, err := subject.Authenticate(first, "bob", "secret")
				firstErr <- err
			}()

			Eventually(func() int { return len(caller.Calls()) }).Should(Equal(1))
			cancel()
			Eventually(firstErr).Should(Receive(Equal(context.Canceled)))

			second := make(chan bool, 1)

			go func() {
				defer GinkgoRecover()

				ok, err := subject.Authenticate(ctx, "bob", "secret")
				Expect(err).ShouldNot(HaveOccurred())
				second <- ok
			}()

			Consistently(second, 20*time.Millisecond).ShouldNot(Receive())
			close(caller.release)

			Eventually(second).Should(Receive(BeTrue()))
			Expect(caller.Calls()).To(HaveLen(1))
			Expect(authCache.Check("bob", userstore.Digest("secret"))).To(BeTrue())
		})

		It("distinguishes cached and remote answers in the log", func() {
			logger := &recordingLogger{}
			subject = NewStore(
				caller,
				Config{Tenant: "acme", Logger: logger, Metrics: collector},
				authCache,
				attrCache,
			)
			caller.values[userstore.Authenticate] = "SUCCESS"

			_, err := subject.Authenticate(ctx, "bob", "secret")
			Expect(err).ShouldNot(HaveOccurred())
			_, err = subject.Authenticate(ctx, "bob", "secret")
			Expect(err).ShouldNot(HaveOccurred())

			Expect(logger.Messages()).To(Equal([]string{
				"[acme] cached successful authentication of 'bob'",
				"[acme] remote agent accepted the credential of 'bob'",
				"[acme] authenticated 'bob' from the authentication cache",
			}))
		})
	})

	Describe("UserPropertyValues", func() {
		BeforeEach(func() {
			caller.values[userstore.GetClaims] = map[string]interface{}{
				"mail":      "bob@example.org",
				"givenname": "Bob",
			}
		})

		It("returns the requested properties that the user has", func() {
			values, err := subject.UserPropertyValues(ctx, "bob", []string{"mail", "telephone"}, "default")

			Expect(err).ShouldNot(HaveOccurred())
			Expect(values).To(Equal(map[string]string{"mail": "bob@example.org"}))
		})

		It("requests the complete attribute list", func() {
			_, err := subject.UserPropertyValues(ctx, "bob", []string{"mail"}, "default")
			Expect(err).ShouldNot(HaveOccurred())

			Expect(caller.Calls()).To(Equal([]call{
				{userstore.GetClaims, map[string]string{"username": "bob", "attributes": "mail,givenname"}},
			}))
		})

		It("answers from the cache on subsequent lookups", func() {
			_, err := subject.UserPropertyValues(ctx, "bob", []string{"mail"}, "default")
			Expect(err).ShouldNot(HaveOccurred())

			values, err := subject.UserPropertyValues(ctx, "bob", []string{"givenname"}, "default")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(values).To(Equal(map[string]string{"givenname": "Bob"}))

			Expect(caller.Calls()).To(HaveLen(1))
		})

		It("accepts a result encoded as a JSON string", func() {
			caller.values[userstore.GetClaims] = `{"mail":"bob@example.org"}`

			values, err := subject.UserPropertyValues(ctx, "bob", []string{"mail"}, "default")

			Expect(err).ShouldNot(HaveOccurred())
			Expect(values).To(Equal(map[string]string{"mail": "bob@example.org"}))
		})

		It("does not cache a failed lookup", func() {
			caller.err = errors.New("<error>")

			_, err := subject.UserPropertyValues(ctx, "bob", []string{"mail"}, "default")

			Expect(err).To(MatchError("<error>"))
			Expect(attrCache.Len()).To(Equal(0))
		})

		It("returns a decode error for nested attribute values", func() {
			caller.values[userstore.GetClaims] = map[string]interface{}{
				"mail": map[string]interface{}{},
			}

			_, err := subject.UserPropertyValues(ctx, "bob", []string{"mail"}, "default")

			Expect(userstore.IsDecodeError(err)).To(BeTrue())
		})
	})

	Describe("ListUsers", func() {
		BeforeEach(func() {
			caller.values[userstore.GetUserList] = map[string]interface{}{
				"usernames": []interface{}{"alice", "anonymous", "bob"},
			}
		})

		It("qualifies every name except the anonymous user", func() {
			names, err := subject.ListUsers(ctx, "*", 100)

			Expect(err).ShouldNot(HaveOccurred())
			Expect(names).To(Equal([]string{"WSO2/alice", "anonymous", "WSO2/bob"}))
			Expect(caller.Calls()).To(Equal([]call{
				{userstore.GetUserList, map[string]string{"filter": "*", "limit": "100"}},
			}))
		})

		It("returns at most maxItems names", func() {
			names, err := subject.ListUsers(ctx, "*", 2)

			Expect(err).ShouldNot(HaveOccurred())
			Expect(names).To(Equal([]string{"WSO2/alice", "anonymous"}))
		})

		It("does not cache the result", func() {
			_, err := subject.ListUsers(ctx, "*", 0)
			Expect(err).ShouldNot(HaveOccurred())

			_, err = subject.ListUsers(ctx, "*", 0)
			Expect(err).ShouldNot(HaveOccurred())

			Expect(caller.Calls()).To(HaveLen(2))
		})

		It("returns a decode error when the result has no usernames field", func() {
			caller.values[userstore.GetUserList] = map[string]interface{}{}

			_, err := subject.ListUsers(ctx, "*", 0)

			Expect(userstore.IsDecodeError(err)).To(BeTrue())
		})
	})

	Describe("ListRoles", func() {
		It("qualifies every role", func() {
			caller.values[userstore.GetRoles] = map[string]interface{}{
				"groups": []interface{}{"admin", "anonymous"},
			}

			roles, err := subject.ListRoles(ctx, "*", 0)

			Expect(err).ShouldNot(HaveOccurred())
			Expect(roles).To(Equal([]string{"WSO2/admin", "WSO2/anonymous"}))
		})
	})

	Describe("RolesOfUser", func() {
		BeforeEach(func() {
			caller.values[userstore.GetUserRoles] = map[string]interface{}{
				"groups": []interface{}{"admin", "Auditors", "staff"},
			}
		})

		It("returns the roles that match the filter, unqualified", func() {
			roles, err := subject.RolesOfUser(ctx, "bob", "a*")

			Expect(err).ShouldNot(HaveOccurred())
			Expect(roles).To(Equal([]string{"admin", "Auditors"}))
			Expect(caller.Calls()).To(Equal([]call{
				{userstore.GetUserRoles, map[string]string{"username": "bob"}},
			}))
		})

		Describe("IsUserInRole", func() {
			It("compares role names case-insensitively", func() {
				ok, err := subject.IsUserInRole(ctx, "bob", "AUDITORS")

				Expect(err).ShouldNot(HaveOccurred())
				Expect(ok).To(BeTrue())
			})

			It("returns false when the user does not have the role", func() {
				ok, err := subject.IsUserInRole(ctx, "bob", "root")

				Expect(err).ShouldNot(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})
	})

	Describe("Mutate", func() {
		It("fails without contacting the agent", func() {
			err := subject.Mutate(ctx, userstore.AddUser)

			Expect(err).To(Equal(userstore.UnsupportedOperationError{Operation: "addUser"}))
			Expect(caller.Calls()).To(BeEmpty())
		})
	})

	Describe("UserExists and RoleExists", func() {
		It("return true without contacting the agent", func() {
			ok, err := subject.UserExists(ctx, "nobody")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = subject.RoleExists(ctx, "nothing")
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeTrue())

			Expect(caller.Calls()).To(BeEmpty())
		})
	})

	It("describes itself", func() {
		Expect(subject.IsReadOnly()).To(BeTrue())
		Expect(subject.Tenant()).To(Equal("acme"))
		Expect(subject.Domain()).To(Equal("WSO2"))
	})
})
