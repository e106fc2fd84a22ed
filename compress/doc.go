// Package compress packs composed packet payloads for the transport.
//
// The bit stream never compresses its own grammar. What this package
// compresses is the finished payload, as one opaque block, on the way out
// of the process. A packed packet is one method tag byte followed by the
// body:
//
//	+--------+----------------------------+
//	| method | body (raw or compressed)   |
//	+--------+----------------------------+
//
// Pack keeps a compressed body only when it beats the raw bytes; losses and
// ties fall back to a Raw frame, the same discipline the stream's string
// coder applies to Huffman codes. Payloads under MinPackSize are never
// worth a codec pass on a per-tick budget and always travel raw.
//
// Unpack bounds the inflated size. A peer's payload can never legally
// exceed the configured packet capacity, so anything that inflates past the
// caller's limit is treated as corrupt. Raw, LZ4 and S2 frames are refused
// without allocating past the limit; Zstd frames are inflated first and then
// refused.
//
// Three methods are available besides Raw: LZ4 and S2 for per-tick
// payloads, Zstd for large state dumps on low-bandwidth links. The Zstd
// body format is a standard frame with two build-selected backends:
// valyala/gozstd under cgo, klauspost/compress/zstd otherwise.
package compress
