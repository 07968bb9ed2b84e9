package envelope_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
	"github.com/rinq/userstore-go/src/internal/envelope"
	"github.com/rinq/userstore-go/src/userstore"
)

var _ = Describe("EncodeRequest", func() {
	It("encodes the payload as a JSON string", func() {
		r, err := envelope.EncodeRequest(
			"<id>",
			userstore.Authenticate,
			map[string]string{"username": "alice", "password": "secret"},
			"carbon.super",
			"PRIMARY",
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(Equal(envelope.Request{
			CorrelationID: "<id>",
			RequestType:   userstore.Authenticate,
			RequestData:   `{"password":"secret","username":"alice"}`,
			Tenant:        "carbon.super",
			Domain:        "PRIMARY",
		}))
	})

	It("requires a correlation ID", func() {
		_, err := envelope.EncodeRequest("", userstore.Authenticate, nil, "", "")

		Expect(err).To(HaveOccurred())
	})

	It("requires a request type", func() {
		_, err := envelope.EncodeRequest("<id>", "", nil, "", "")

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("MarshalRequest", func() {
	It("produces the wire record", func() {
		b, err := envelope.MarshalRequest(envelope.Request{
			CorrelationID: "<id>",
			RequestType:   userstore.GetRoles,
			RequestData:   `{"filter":"*","limit":10}`,
			Tenant:        "t",
			Domain:        "d",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).To(MatchJSON(`{
			"correlationId": "<id>",
			"requestType": "getroles",
			"requestData": "{\"filter\":\"*\",\"limit\":10}",
			"tenant": "t",
			"domain": "d"
		}`))
	})

	It("can be parsed by UnmarshalRequest", func() {
		in, err := envelope.EncodeRequest("<id>", userstore.GetUserRoles, map[string]string{"username": "bob"}, "t", "d")
		Expect(err).NotTo(HaveOccurred())

		b, err := envelope.MarshalRequest(in)
		Expect(err).NotTo(HaveOccurred())

		out, err := envelope.UnmarshalRequest(b)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(in))

		var payload map[string]string
		Expect(out.Payload(&payload)).To(Succeed())
		Expect(payload).To(Equal(map[string]string{"username": "bob"}))
	})
})

var _ = Describe("DecodeResponseEnvelope", func() {
	It("returns the result field", func() {
		r, err := envelope.NewResponse("<id>", "SUCCESS")
		Expect(err).NotTo(HaveOccurred())

		result, err := envelope.DecodeResponseEnvelope(userstore.Authenticate, r)

		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal("SUCCESS"))
	})

	It("returns a null result", func() {
		result, err := envelope.DecodeResponseEnvelope(
			userstore.Authenticate,
			envelope.Response{ResponseData: `{"result":null}`},
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(BeNil())
	})

	DescribeTable(
		"returns a DecodeError for malformed response data",
		func(data string) {
			_, err := envelope.DecodeResponseEnvelope(
				userstore.GetClaims,
				envelope.Response{CorrelationID: "<id>", ResponseData: data},
			)

			Expect(userstore.IsDecodeError(err)).To(BeTrue())

			e := err.(userstore.DecodeError)
			Expect(e.RequestType).To(Equal(userstore.GetClaims))
			Expect(e.CorrelationID).To(Equal("<id>"))
		},
		Entry("empty", ""),
		Entry("truncated", `{"result":`),
		Entry("not an object", `["result"]`),
		Entry("no result field", `{"value":"SUCCESS"}`),
		Entry("trailing data", `{"result":"SUCCESS"} trailing`),
		Entry("unbalanced closing brace", `{"result":"SUCCESS"}}`),
		Entry("second value", `{"result":"SUCCESS"}{"result":"FAILURE"}`),
	)
})

var _ = Describe("UnmarshalResponse", func() {
	It("parses the wire record", func() {
		r, err := envelope.UnmarshalResponse(
			userstore.Authenticate,
			[]byte(`{"correlationId":"<id>","responseData":"{\"result\":\"SUCCESS\"}"}`),
		)

		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(Equal(envelope.Response{
			CorrelationID: "<id>",
			ResponseData:  `{"result":"SUCCESS"}`,
		}))
	})

	It("returns a DecodeError if the record is malformed", func() {
		_, err := envelope.UnmarshalResponse(userstore.Authenticate, []byte(`<xml/>`))

		Expect(userstore.IsDecodeError(err)).To(BeTrue())
	})
})
