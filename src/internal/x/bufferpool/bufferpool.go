package bufferpool

import (
	"bytes"
	"sync"
)

var buffers sync.Pool

// Get fetches a buffer from the buffer pool.
func Get() *bytes.Buffer {
	return buffers.Get().(*bytes.Buffer)
}

// Put returns a buffer to the buffer pool.
func Put(buf *bytes.Buffer) {
	if buf != nil {
		buf.Reset()
		buffers.Put(buf)
	}
}

func init() {
	buffers.New = func() interface{} {
		return &bytes.Buffer{}
	}
}

// Detach returns a copy of the contents of buf, then returns buf to the pool.
func Detach(buf *bytes.Buffer) []byte {
	b := make([]byte, buf.Len())
	copy(b, buf.Bytes())
	Put(buf)
	return b
}
