package main

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("loadProperties", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "userstorectl")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("reads a flat mapping of properties", func() {
		path := filepath.Join(dir, "props.yaml")
		Expect(os.WriteFile(path, []byte("MessageBrokerEndpoint: amqp://localhost\nMessageRetryLimit: \"3\"\n"), 0600)).To(Succeed())

		props, err := loadProperties(path)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(props).To(Equal(map[string]string{
			"MessageBrokerEndpoint": "amqp://localhost",
			"MessageRetryLimit":     "3",
		}))
	})

	It("returns an error for nested values", func() {
		path := filepath.Join(dir, "props.yaml")
		Expect(os.WriteFile(path, []byte("MessageRetryLimit:\n  value: 3\n"), 0600)).To(Succeed())

		_, err := loadProperties(path)

		Expect(err).Should(HaveOccurred())
	})
})

var _ = Describe("filterArg", func() {
	It("matches everything when no filter is given", func() {
		Expect(filterArg(nil, 0)).To(Equal("*"))
		Expect(filterArg([]string{"bob"}, 1)).To(Equal("*"))
	})

	It("returns the filter argument", func() {
		Expect(filterArg([]string{"bob", "a*"}, 1)).To(Equal("a*"))
	})
})

var _ = Describe("root command", func() {
	It("rejects unknown commands", func() {
		cmd := newRootCmd()
		cmd.SetArgs([]string{"add-user", "bob"})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		Expect(cmd.Execute()).Should(HaveOccurred())
	})

	It("requires a username to authenticate", func() {
		cmd := newRootCmd()
		cmd.SetArgs([]string{"authenticate"})
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})

		Expect(cmd.Execute()).Should(HaveOccurred())
	})
})
