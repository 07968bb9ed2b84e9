package opentr

import (
	"bytes"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/rinq/userstore-go/src/internal/x/bufferpool"
)

// PackSpanContext returns the binary representation of the context of span s.
// It returns nil if the tracer produces an empty representation.
func PackSpanContext(s opentracing.Span) ([]byte, error) {
	buf := bufferpool.Get()

	if err := s.Tracer().Inject(
		s.Context(),
		opentracing.Binary,
		buf,
	); err != nil {
		bufferpool.Put(buf)
		return nil, err
	}

	if buf.Len() == 0 {
		bufferpool.Put(buf)
		return nil, nil
	}

	return bufferpool.Detach(buf), nil
}

// UnpackSpanContext extracts a span context from b. If b is empty, or does not
// contain a span context, nil is returned.
func UnpackSpanContext(t opentracing.Tracer, b []byte) (opentracing.SpanContext, error) {
	if len(b) == 0 {
		return nil, nil
	}

	buf := bytes.NewBuffer(b)

	sc, err := t.Extract(opentracing.Binary, buf)
	if err == opentracing.ErrSpanContextNotFound {
		return nil, nil
	}

	return sc, err
}
