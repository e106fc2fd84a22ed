package stream

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tickwire/bitpack/endian"
)

// wireOrder is the in-buffer byte order of every multi-byte primitive.
// The wire format is little-endian end to end; big-endian hosts convert
// through it on both sides.
var wireOrder = endian.Wire

// Stream is a sequential bit-granular reader/writer over a byte buffer.
//
// The buffer is treated as an addressable sequence of bits, LSB-first within
// each byte. A single bit cursor serves both reads and writes; readers must
// mirror the writer's call sequence exactly, since the wire format carries no
// framing of its own.
//
// Reads and writes past the configured ceilings set a sticky error flag and
// become no-ops; callers are expected to check Error once per logical unit
// (typically per packet) rather than after every operation.
//
// Stream does not own its buffer and never grows it. ResizeStream and
// AppendStream layer growth disciplines on top of the same primitives.
type Stream struct {
	data         []byte
	bitNum       uint32
	bufSize      uint32
	maxReadBits  uint32
	maxWriteBits uint32
	err          bool

	compressPoint mgl32.Vec3
	stringBuf     []byte
	truncated     int
}

// New creates a fixed-capacity stream over buf. Both the read and write
// ceilings are len(buf) bytes; the caller retains ownership of the buffer.
func New(buf []byte) *Stream {
	s := &Stream{}
	s.SetBuffer(buf, len(buf), -1)

	return s
}

// SetBuffer rebinds the stream to buf, resets the bit cursor and the sticky
// error flag, and re-derives the bit ceilings.
//
// size is the logical buffer size in bytes and bounds reads. maxSize bounds
// writes; passing a negative maxSize uses size. When maxSize exceeds size the
// buffer must be at least maxSize bytes long.
//
// Rebinding also clears the compression anchor, matching a fresh stream.
func (s *Stream) SetBuffer(buf []byte, size, maxSize int) {
	s.data = buf
	s.bitNum = 0
	s.bufSize = uint32(size)
	s.maxReadBits = uint32(size) << 3
	if maxSize < 0 {
		maxSize = size
	}
	s.maxWriteBits = uint32(maxSize) << 3
	s.err = false
	s.ClearCompressionPoint()
}

// Position returns the byte position of the bit cursor, rounded up to the
// next byte boundary.
func (s *Stream) Position() int {
	return int((s.bitNum + 7) >> 3)
}

// SetPosition moves the bit cursor to the start of byte pos.
func (s *Stream) SetPosition(pos int) {
	s.bitNum = uint32(pos) << 3
}

// BitPosition returns the exact bit position of the cursor. Codecs that
// rewind mid-byte (the Huffman code-generation walk) use this instead of
// the byte-rounded Position.
func (s *Stream) BitPosition() int {
	return int(s.bitNum)
}

// SetBitPosition moves the cursor to an exact bit position.
func (s *Stream) SetBitPosition(bit int) {
	s.bitNum = uint32(bit)
}

// Size returns the logical buffer size in bytes.
func (s *Stream) Size() int {
	return int(s.bufSize)
}

// Buffer returns the logical byte region backing the stream.
func (s *Stream) Buffer() []byte {
	return s.data[:s.bufSize]
}

// Bytes returns the buffer from the current byte position to the end of the
// logical region. Writing through the returned slice bypasses the bit cursor;
// it exists for handing partially built payloads to block operations.
func (s *Stream) Bytes() []byte {
	return s.data[s.Position():s.bufSize]
}

// ReadByteSize returns the number of bytes still readable past the cursor.
func (s *Stream) ReadByteSize() int {
	return int(s.maxReadBits>>3) - s.Position()
}

// Error reports whether any prior operation over- or under-ran the stream.
// The flag is sticky: once set it stays set until the stream is re-seeded
// with SetBuffer.
func (s *Stream) Error() bool {
	return s.err
}

// Clear zeroes the logical buffer. The cursor is left untouched.
func (s *Stream) Clear() {
	clear(s.data[:s.bufSize])
}

// WriteBits copies the low bitCount bits of src (a little-endian byte
// sequence) into the stream at the bit cursor, LSB-first within each byte,
// and advances the cursor.
//
// Bits in the final touched byte beyond the written region are cleared, so a
// partially filled tail byte is always zero-extended to the byte boundary.
// If the write would pass the write ceiling, the sticky error flag is set and
// the buffer is left untouched.
func (s *Stream) WriteBits(bitCount int, src []byte) {
	if bitCount <= 0 {
		return
	}
	if uint32(bitCount)+s.bitNum > s.maxWriteBits {
		s.err = true
		return
	}

	st := int(s.bitNum >> 3)
	upShift := uint(s.bitNum & 0x7)

	if upShift == 0 {
		// Byte-aligned fast path: whole-byte copy plus a masked tail.
		n := bitCount >> 3
		copy(s.data[st:], src[:n])
		if rem := uint(bitCount & 0x7); rem != 0 {
			s.data[st+n] = src[n] & byte(0xFF>>(8-rem))
		}
		s.bitNum += uint32(bitCount)

		return
	}

	end := int((uint32(bitCount) + s.bitNum - 1) >> 3)
	downShift := 8 - upShift
	lastMask := byte(0xFF >> (7 - ((s.bitNum + uint32(bitCount) - 1) & 0x7)))
	startMask := byte(0xFF >> downShift)

	si := 0
	curB := src[si]
	si++
	s.data[st] = (curB << upShift) | (s.data[st] & startMask)
	st++

	for st <= end {
		var nextB byte
		if si < len(src) {
			nextB = src[si]
			si++
		}
		s.data[st] = (curB >> downShift) | (nextB << upShift)
		st++
		curB = nextB
	}
	s.data[end] &= lastMask

	s.bitNum += uint32(bitCount)
}

// ReadBits reads bitCount bits at the cursor, LSB-first, into dst, filling
// ceil(bitCount/8) bytes and advancing the cursor. Bits of the final
// destination byte beyond bitCount-1 are unspecified.
//
// An over-read sets the sticky error flag, zeroes the destination bytes and
// leaves the cursor where it was.
func (s *Stream) ReadBits(bitCount int, dst []byte) {
	if bitCount <= 0 {
		return
	}
	byteCount := (bitCount + 7) >> 3
	if uint32(bitCount)+s.bitNum > s.maxReadBits {
		s.err = true
		n := byteCount
		if n > len(dst) {
			n = len(dst)
		}
		clear(dst[:n])

		return
	}

	st := int(s.bitNum >> 3)
	downShift := uint(s.bitNum & 0x7)

	if downShift == 0 {
		copy(dst[:byteCount], s.data[st:st+byteCount])
		s.bitNum += uint32(bitCount)

		return
	}

	upShift := 8 - downShift
	curB := s.data[st]
	for i := 0; i < byteCount; i++ {
		st++
		var nextB byte
		if st < len(s.data) {
			nextB = s.data[st]
		}
		dst[i] = (curB >> downShift) | (nextB << upShift)
		curB = nextB
	}

	s.bitNum += uint32(bitCount)
}

// WriteFlag writes a single bit and returns the written value, so dependent
// writes chain naturally:
//
//	if s.WriteFlag(item != nil) {
//		item.pack(s)
//	}
func (s *Stream) WriteFlag(val bool) bool {
	if s.bitNum+1 > s.maxWriteBits {
		s.err = true
		return false
	}
	if val {
		s.data[s.bitNum>>3] |= 1 << (s.bitNum & 0x7)
	} else {
		s.data[s.bitNum>>3] &^= 1 << (s.bitNum & 0x7)
	}
	s.bitNum++

	return val
}

// ReadFlag reads a single bit.
func (s *Stream) ReadFlag() bool {
	if s.bitNum+1 > s.maxReadBits {
		s.err = true
		return false
	}
	ret := s.data[s.bitNum>>3]&(1<<(s.bitNum&0x7)) != 0
	s.bitNum++

	return ret
}

// SetBit sets or clears the bit at an absolute bit index, independent of the
// cursor.
func (s *Stream) SetBit(bit int, set bool) {
	if set {
		s.data[bit>>3] |= 1 << (bit & 0x7)
	} else {
		s.data[bit>>3] &^= 1 << (bit & 0x7)
	}
}

// TestBit reports the bit at an absolute bit index, independent of the cursor.
func (s *Stream) TestBit(bit int) bool {
	return s.data[bit>>3]&(1<<(bit&0x7)) != 0
}

// WriteBytes writes len(b) raw bytes through the bit cursor.
func (s *Stream) WriteBytes(b []byte) {
	s.WriteBits(len(b)<<3, b)
}

// ReadBytes fills b with raw bytes read through the bit cursor.
func (s *Stream) ReadBytes(b []byte) {
	s.ReadBits(len(b)<<3, b)
}
