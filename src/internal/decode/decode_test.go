package decode_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/rinq/userstore-go/src/internal/decode"
	"github.com/rinq/userstore-go/src/internal/envelope"
	"github.com/rinq/userstore-go/src/userstore"
)

var _ = Describe("Authentication", func() {
	It("returns true for the success token", func() {
		ok, err := decode.Authentication("<id>", "SUCCESS")

		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
	})

	It("returns false for any other string", func() {
		ok, err := decode.Authentication("<id>", "FAILED")

		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	DescribeTable(
		"returns a DecodeError for non-string results",
		func(v interface{}) {
			ok, err := decode.Authentication("<id>", v)

			Expect(ok).To(BeFalse())
			Expect(userstore.IsDecodeError(err)).To(BeTrue())
			Expect(err.(userstore.DecodeError).CorrelationID).To(Equal("<id>"))
		},
		Entry("null", nil),
		Entry("boolean", true),
		Entry("number", float64(1)),
		Entry("object", map[string]interface{}{"status": "SUCCESS"}),
	)

	It("returns a DecodeError for a numeric result received on the wire", func() {
		v, err := envelope.DecodeResponseEnvelope(
			userstore.Authenticate,
			envelope.Response{CorrelationID: "<id>", ResponseData: `{"result": 42}`},
		)
		Expect(err).NotTo(HaveOccurred())

		ok, err := decode.Authentication("<id>", v)

		Expect(ok).To(BeFalse())
		Expect(userstore.IsDecodeError(err)).To(BeTrue())
	})
})

var _ = Describe("List", func() {
	It("returns the strings under the named field", func() {
		names, err := decode.List(
			userstore.GetUserList,
			"<id>",
			map[string]interface{}{"usernames": []interface{}{"alice", "bob"}},
			decode.UsernamesField,
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"alice", "bob"}))
	})

	It("accepts a result encoded as a JSON string", func() {
		names, err := decode.List(
			userstore.GetRoles,
			"<id>",
			`{"groups":["admin","everyone"]}`,
			decode.GroupsField,
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(Equal([]string{"admin", "everyone"}))
	})

	It("returns an empty, non-nil slice for an empty array", func() {
		names, err := decode.List(
			userstore.GetRoles,
			"<id>",
			map[string]interface{}{"groups": []interface{}{}},
			decode.GroupsField,
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(names).To(BeEmpty())
		Expect(names).NotTo(BeNil())
	})

	DescribeTable(
		"returns a DecodeError for malformed results",
		func(v interface{}) {
			_, err := decode.List(userstore.GetUserList, "<id>", v, decode.UsernamesField)

			Expect(userstore.IsDecodeError(err)).To(BeTrue())
		},
		Entry("missing field", map[string]interface{}{"groups": []interface{}{}}),
		Entry("field is not an array", map[string]interface{}{"usernames": "alice"}),
		Entry("element is not a string", map[string]interface{}{"usernames": []interface{}{"alice", float64(1)}}),
		Entry("result is an array", []interface{}{"alice"}),
		Entry("result is null", nil),
		Entry("result string is not JSON", "alice,bob"),
	)
})

var _ = Describe("Attributes", func() {
	It("returns the flat attribute map", func() {
		attrs, err := decode.Attributes("<id>", map[string]interface{}{
			"mail": "alice@example.org",
			"sn":   "Smith",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(attrs).To(Equal(map[string]string{
			"mail": "alice@example.org",
			"sn":   "Smith",
		}))
	})

	It("accepts a result encoded as a JSON string", func() {
		attrs, err := decode.Attributes("<id>", `{"mail":"alice@example.org"}`)

		Expect(err).NotTo(HaveOccurred())
		Expect(attrs).To(Equal(map[string]string{"mail": "alice@example.org"}))
	})

	DescribeTable(
		"returns a DecodeError for nested or non-string values",
		func(v interface{}) {
			_, err := decode.Attributes("<id>", map[string]interface{}{"mail": v})

			Expect(userstore.IsDecodeError(err)).To(BeTrue())
			Expect(err.(userstore.DecodeError).RequestType).To(Equal(userstore.GetClaims))
		},
		Entry("object", map[string]interface{}{"primary": "alice@example.org"}),
		Entry("array", []interface{}{"alice@example.org"}),
		Entry("number", float64(1)),
		Entry("null", nil),
	)
})

var _ = Describe("QualifyName", func() {
	DescribeTable(
		"qualifies names with the domain",
		func(name, domain, expected string) {
			Expect(decode.QualifyName(name, domain)).To(Equal(expected))
		},
		Entry("secondary domain", "alice", "ext", "EXT/alice"),
		Entry("primary domain", "alice", "PRIMARY", "alice"),
		Entry("primary domain, any case", "alice", "primary", "alice"),
		Entry("empty domain", "alice", "", "alice"),
		Entry("already qualified", "OTHER/alice", "EXT", "OTHER/alice"),
	)
})

var _ = Describe("QualifyNames", func() {
	It("passes the anonymous user through unmodified", func() {
		names := decode.QualifyNames(
			[]string{"alice", "wso2.anonymous.user", "bob"},
			"EXT",
			"wso2.anonymous.user",
		)

		Expect(names).To(Equal([]string{"EXT/alice", "wso2.anonymous.user", "EXT/bob"}))
	})
})
