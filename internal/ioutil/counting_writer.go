// Package ioutil provides writer helpers used by the render functions.
package ioutil

//go:generate go tool errtrace -w .

import (
	"io"
	"sync"

	"braces.dev/errtrace"
)

// CountingWriter wraps an io.Writer, sums the bytes written and remembers the first error.
// After an error every further write is a no-op, so a render function can issue
// all its writes and check the result once.
type CountingWriter struct {
	w   io.Writer
	num int
	err error
}

// Print writes all strings in order.
func (cw *CountingWriter) Print(ss ...string) *CountingWriter {
	for _, s := range ss {
		if cw.err != nil {
			return cw
		}
		n, err := io.WriteString(cw.w, s)
		cw.num += n
		if err != nil {
			cw.err = errtrace.Wrap(err)
		}
	}
	return cw
}

// Call executes a RenderTo-style function against the underlying writer.
func (cw *CountingWriter) Call(fn func(io.Writer) (int, error)) *CountingWriter {
	if cw.err != nil {
		return cw
	}
	n, err := fn(cw.w)
	cw.num += n
	if err != nil {
		cw.err = errtrace.Wrap(err)
	}
	return cw
}

// Result returns the total number of bytes written and the first error encountered.
func (cw *CountingWriter) Result() (num int, err error) {
	return cw.num, errtrace.Wrap(cw.err)
}

var cntWrtPool = &sync.Pool{
	New: func() any { return &CountingWriter{} },
}

// GetCountingWriter takes a writer wrapping w from the pool.
func GetCountingWriter(w io.Writer) *CountingWriter {
	cw := cntWrtPool.Get().(*CountingWriter) //nolint:forcetypeassert
	cw.w = w
	return cw
}

// FreeCountingWriter resets cw and returns it to the pool.
func FreeCountingWriter(cw *CountingWriter) {
	cw.w = nil
	cw.num = 0
	cw.err = nil
	cntWrtPool.Put(cw)
}
