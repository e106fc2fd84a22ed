package stream

import (
	"io"

	"github.com/tickwire/bitpack/internal/pool"
)

// ResizeStream is a Stream that owns its buffer and grows it on demand.
//
// Callers invoke Validate before a write burst; if fewer than minSpace bytes
// of headroom remain, the buffer grows to the current position plus twice
// minSpace. Growth preserves the cursor and everything written before it.
//
// The backing buffer comes from the packet scratch pool; Close returns it.
type ResizeStream struct {
	Stream
	minSpace int
}

// NewResizeStream creates an owning stream with minSpace bytes of guaranteed
// headroom per Validate call. initialSize of zero defaults to twice minSpace.
func NewResizeStream(minSpace, initialSize int) *ResizeStream {
	if initialSize == 0 {
		initialSize = minSpace * 2
	}

	r := &ResizeStream{minSpace: minSpace}
	r.SetBuffer(pool.GetPacket(initialSize), initialSize, initialSize)

	return r
}

// Validate guarantees minSpace bytes of headroom past the current position,
// growing the buffer when needed.
func (r *ResizeStream) Validate() {
	if r.Position()+r.minSpace > r.Size() {
		r.grow(r.Position() + r.minSpace*2)
	}
}

// grow resizes the buffer to exactly newSize bytes, preserving content and
// cursor, and lifts both bit ceilings to match. The headroom policy lives
// in the callers; this only reallocates.
func (r *ResizeStream) grow(newSize int) {
	r.data = pool.Resize(r.data, newSize)
	r.bufSize = uint32(newSize)
	r.maxReadBits = uint32(newSize) << 3
	r.maxWriteBits = uint32(newSize) << 3
}

// Close releases the owned buffer back to the pool. The stream must not be
// used afterwards.
func (r *ResizeStream) Close() {
	pool.PutPacket(r.data)
	r.data = nil
}

// WriteTo writes everything up to the current position to w.
func (r *ResizeStream) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data[:r.Position()])

	return int64(n), err
}

// AppendStream is an unbounded-append variant of ResizeStream: callers
// advise the size of upcoming writes, and the buffer only ever grows by what
// was advised plus the configured headroom. Compact trims the accumulated
// headroom back down after a burst.
type AppendStream struct {
	ResizeStream
}

// NewAppendStream creates an unbounded-append stream drawing from the
// record scratch pool. minSpace plays the same headroom role as in
// ResizeStream.
func NewAppendStream(minSpace, initialSize int) *AppendStream {
	if initialSize == 0 {
		initialSize = minSpace * 2
	}

	a := &AppendStream{}
	a.minSpace = minSpace
	a.SetBuffer(pool.GetRecord(initialSize), initialSize, initialSize)

	return a
}

// Reset rewinds the cursor to the beginning, keeping the buffer.
func (a *AppendStream) Reset() {
	a.SetPosition(0)
}

// Validate guarantees room for upcomingBytes plus the headroom margin.
func (a *AppendStream) Validate(upcomingBytes int) {
	if a.Position()+upcomingBytes+a.minSpace > a.Size() {
		a.grow(a.Position() + upcomingBytes + a.minSpace)
	}
}

// Compact shrinks the buffer to the live prefix plus twice the headroom
// margin, copying into a fresh pooled buffer and releasing the old one.
func (a *AppendStream) Compact() {
	newSize := a.Position() + a.minSpace*2

	nb := pool.GetRecord(newSize)
	copy(nb, a.data[:a.Position()])

	pool.PutRecord(a.data)
	a.data = nb
	a.bufSize = uint32(newSize)
	a.maxReadBits = uint32(newSize) << 3
	a.maxWriteBits = uint32(newSize) << 3
}

// Close releases the owned buffer back to the record pool.
func (a *AppendStream) Close() {
	pool.PutRecord(a.data)
	a.data = nil
}
