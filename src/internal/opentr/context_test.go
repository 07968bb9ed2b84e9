package opentr_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/rinq/userstore-go/src/internal/opentr"
)

var _ = Describe("PackSpanContext", func() {
	It("returns nil when the tracer produces no output", func() {
		span := opentracing.NoopTracer{}.StartSpan("<op>")

		b, err := opentr.PackSpanContext(span)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(b).To(BeNil())
	})

	It("returns an error when the tracer does not support the binary format", func() {
		span := mocktracer.New().StartSpan("<op>")

		_, err := opentr.PackSpanContext(span)

		Expect(err).To(Equal(opentracing.ErrUnsupportedFormat))
	})
})

var _ = Describe("UnpackSpanContext", func() {
	It("returns nil when there is no span context", func() {
		sc, err := opentr.UnpackSpanContext(opentracing.NoopTracer{}, nil)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(sc).To(BeNil())
	})
})

var _ = Describe("SetupRequest", func() {
	It("sets the operation name and tags", func() {
		tracer := mocktracer.New()
		span := tracer.StartSpan("<op>")

		opentr.SetupRequest(span, "getroles", "acme", "<id>")
		span.Finish()

		s := tracer.FinishedSpans()[0]
		Expect(s.OperationName).To(Equal("getroles request"))
		Expect(s.Tags()).To(HaveKeyWithValue("correlation_id", "<id>"))
		Expect(s.Tags()).To(HaveKeyWithValue("tenant", "acme"))
	})
})
