package jsonx

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/rinq/userstore-go/src/internal/x/bufferpool"
	"github.com/ugorji/go/codec"
)

var (
	handle   codec.JsonHandle
	encoders sync.Pool
	decoders sync.Pool
)

// Encode writes v to w in JSON format.
func Encode(w io.Writer, v interface{}) error {
	e := encoders.Get().(*codec.Encoder)
	defer encoders.Put(e)

	e.Reset(w)
	return e.Encode(v)
}

// Marshal returns the JSON representation of v.
func Marshal(v interface{}) ([]byte, error) {
	buf := bufferpool.Get()

	if err := Encode(buf, v); err != nil {
		bufferpool.Put(buf)
		return nil, err
	}

	return bufferpool.Detach(buf), nil
}

// Unmarshal parses JSON data in b and unpacks into v.
//
// JSON objects decoded into an interface{} are represented as
// map[string]interface{}. It is an error for b to contain anything other than
// whitespace after the first JSON value.
func Unmarshal(b []byte, v interface{}) error {
	d := decoders.Get().(*codec.Decoder)
	defer decoders.Put(d)

	d.ResetBytes(b)
	if err := d.Decode(v); err != nil {
		return err
	}

	n := d.NumBytesRead()
	if n > len(b) {
		n = len(b)
	}

	if len(bytes.TrimSpace(b[n:])) != 0 {
		return fmt.Errorf("unexpected data after JSON value at offset %d", n)
	}

	return nil
}

func init() {
	handle.MapType = reflect.TypeOf(map[string]interface{}(nil))
	handle.Canonical = true

	encoders.New = func() interface{} {
		return codec.NewEncoder(nil, &handle)
	}

	decoders.New = func() interface{} {
		return codec.NewDecoderBytes(nil, &handle)
	}
}
