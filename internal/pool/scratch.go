// Package pool recycles the scratch buffers behind the owning stream
// variants.
//
// Two size classes exist, matching the two owners: packet-sized buffers for
// bounded resizable streams and record-sized buffers for unbounded append
// streams. The pool deliberately carries no growth policy; how much a
// stream grows is fixed by the stream's own headroom laws, so Resize takes
// the exact target size and nothing else.
package pool

import "sync"

const (
	// PacketScratchSize covers an MTU-sized packet with headroom.
	PacketScratchSize = 2048

	// RecordScratchSize suits append streams that accumulate many records
	// between compactions.
	RecordScratchSize = 64 * 1024

	// Buffers grown past these caps are dropped on Put instead of
	// returning to their class, so one oversized burst cannot pin memory.
	packetKeepLimit = 64 * 1024
	recordKeepLimit = 1024 * 1024
)

type sizeClass struct {
	scratch sync.Pool
	keep    int
}

func newSizeClass(size, keep int) *sizeClass {
	c := &sizeClass{keep: keep}
	c.scratch.New = func() any {
		b := make([]byte, 0, size)
		return &b
	}

	return c
}

// get returns a zeroed buffer of length n. A pooled buffer too small for n
// is left aside and a fresh allocation takes its place.
func (c *sizeClass) get(n int) []byte {
	bp, _ := c.scratch.Get().(*[]byte)
	b := *bp
	if cap(b) < n {
		return make([]byte, n)
	}

	b = b[:n]
	clear(b)

	return b
}

func (c *sizeClass) put(b []byte) {
	if b == nil || cap(b) > c.keep {
		return
	}

	b = b[:0]
	c.scratch.Put(&b)
}

var (
	packets = newSizeClass(PacketScratchSize, packetKeepLimit)
	records = newSizeClass(RecordScratchSize, recordKeepLimit)
)

// GetPacket returns a zeroed packet-class buffer of length n.
func GetPacket(n int) []byte {
	return packets.get(n)
}

// PutPacket returns a packet-class buffer for reuse.
func PutPacket(b []byte) {
	packets.put(b)
}

// GetRecord returns a zeroed record-class buffer of length n.
func GetRecord(n int) []byte {
	return records.get(n)
}

// PutRecord returns a record-class buffer for reuse.
func PutRecord(b []byte) {
	records.put(b)
}

// Resize returns a buffer of length n carrying the contents of b. Newly
// exposed bytes are zero, so a stream can splice bits into them directly
// without reading stale data back out of a recycled region.
func Resize(b []byte, n int) []byte {
	if n <= len(b) {
		return b[:n]
	}
	if cap(b) >= n {
		old := len(b)
		b = b[:n]
		clear(b[old:])

		return b
	}

	nb := make([]byte, n)
	copy(nb, b)

	return nb
}
