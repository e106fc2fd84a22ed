// Package bitpack provides a bit-packed serialization stream for game
// network protocols, where every saved bit reduces per-tick bandwidth
// across thousands of entities.
//
// The core is a sequential reader/writer that treats its byte buffer as an
// addressable sequence of bits: single-bit flags, n-bit integers, quantized
// floats, lossy geometric codecs (normals, bounded vectors, affine
// transforms, anchored position deltas) and a static-Huffman string coder.
// There is no framing inside a stream; the call sequence is the schema, and
// a reader must mirror the writer's calls in order.
//
// # Basic Usage
//
// Composing and decoding a payload:
//
//	import "github.com/tickwire/bitpack"
//
//	buf := make([]byte, 64)
//	w := bitpack.New(buf)
//	if w.WriteFlag(moved) {
//	    w.WriteCompressedPoint(pos, 0.01)
//	}
//	w.WriteString(name, 64)
//	if w.Error() {
//	    // payload did not fit
//	}
//
//	r := bitpack.New(buf)
//	if r.ReadFlag() {
//	    pos = r.ReadCompressedPoint(0.01)
//	}
//	name = r.ReadString()
//
// # Package Structure
//
// This package re-exports the common entry points of the stream package,
// including the constructors of the growth variants and the packet
// singleton accessor. Packet sending, digests and the payload codecs live
// in the stream and compress packages.
package bitpack

import (
	"github.com/tickwire/bitpack/stream"
)

// MaxPacketDataSize is the capacity of the shared packet stream.
const MaxPacketDataSize = stream.MaxPacketDataSize

// Stream is a fixed-capacity bit stream; see the stream package.
type Stream = stream.Stream

// New creates a fixed-capacity stream over buf.
func New(buf []byte) *Stream {
	return stream.New(buf)
}

// NewResize creates an owning stream that grows with minSpace bytes of
// headroom per Validate call.
func NewResize(minSpace, initialSize int) *stream.ResizeStream {
	return stream.NewResizeStream(minSpace, initialSize)
}

// NewAppend creates an owning unbounded-append stream.
func NewAppend(minSpace, initialSize int) *stream.AppendStream {
	return stream.NewAppendStream(minSpace, initialSize)
}

// GetPacketStream returns the process-wide packet stream, rewound and
// reconfigured for writeSize bytes of payload. Single-threaded by contract.
func GetPacketStream(writeSize int) *Stream {
	return stream.GetPacketStream(writeSize)
}
