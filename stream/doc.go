// Package stream implements the bit-granular packet payload layer of the
// network protocol.
//
// A Stream treats its byte buffer as a sequence of bits, LSB-first within
// each byte, and layers a catalog of codecs over two raw primitives
// (WriteBits and ReadBits): n-bit integers, quantized unit floats, unit
// normals, bounded-magnitude vectors, affine transforms, anchored position
// deltas and Huffman-coded strings. Multi-byte primitives are always
// little-endian on the wire.
//
// Nothing frames the stream internally. The writer's call sequence is the
// schema, and the reader must issue the mirror calls in the same order.
// Errors are sticky per stream: any out-of-range access flips a flag that
// callers check once per packet.
//
// Three growth disciplines share the primitives: Stream never grows and is
// bounded by its buffer; ResizeStream grows with headroom on Validate;
// AppendStream grows by advised amounts and can Compact afterwards. A
// process-wide packet stream (GetPacketStream) composes outbound packets
// without allocation, single-threaded by contract.
package stream
