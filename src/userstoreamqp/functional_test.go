package userstoreamqp_test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/rinq/userstore-go/src/internal/amqptest"
	"github.com/rinq/userstore-go/src/internal/functest"
	"github.com/rinq/userstore-go/src/userstore"
	"github.com/rinq/userstore-go/src/userstore/options"
)

var _ = Describe("store (functional)", func() {
	var subject userstore.Store

	BeforeEach(func() {
		if _, ok := amqptest.DSN(); !ok {
			Skip(amqptest.DSNVariable + " is not set")
		}

		topic := functest.NewTopic()
		functest.StartAgent(topic, "../internal/agent/testdata/directory.yaml")
		subject = functest.NewStore(topic, options.Tenant("acme"), options.Domain("WSO2"))
	})

	AfterEach(func() {
		functest.TearDown()
	})

	It("authenticates users", func() {
		ok, err := subject.Authenticate(context.Background(), "alice", "secret")

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("lists the roles of a user", func() {
		roles, err := subject.RolesOfUser(context.Background(), "bob", "*")

		Expect(err).ShouldNot(HaveOccurred())
		Expect(roles).To(Equal([]string{"staff"}))
	})

	It("lists roles with qualified names", func() {
		roles, err := subject.ListRoles(context.Background(), "a*", 0)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(roles).To(Equal([]string{"WSO2/auditors", "WSO2/admin"}))
	})
})
