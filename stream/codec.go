package stream

import (
	"math"
	"math/bits"
)

// ceilLog2 returns the number of bits needed to hold values in [0, x),
// i.e. the exact log2 of the next power of two at or above x.
func ceilLog2(x uint32) int {
	if x <= 1 {
		return 0
	}

	return bits.Len32(x - 1)
}

// WriteInt writes the low bitCount bits of val, little-endian.
func (s *Stream) WriteInt(val int32, bitCount int) {
	var b [4]byte
	wireOrder.PutUint32(b[:], uint32(val))
	s.WriteBits(bitCount, b[:])
}

// ReadInt reads bitCount bits as an unsigned little-endian value.
// A 32-bit read returns the value whole, preserving sign; narrower reads
// are masked to bitCount bits and zero-extended.
func (s *Stream) ReadInt(bitCount int) int32 {
	var b [4]byte
	s.ReadBits(bitCount, b[:])
	ret := wireOrder.Uint32(b[:])
	if bitCount == 32 {
		return int32(ret)
	}

	return int32(ret & (uint32(1)<<uint(bitCount) - 1))
}

// WriteSignedInt writes a sign flag followed by the magnitude in bitCount-1
// bits.
func (s *Stream) WriteSignedInt(value int32, bitCount int) {
	if s.WriteFlag(value < 0) {
		s.WriteInt(-value, bitCount-1)
	} else {
		s.WriteInt(value, bitCount-1)
	}
}

// ReadSignedInt reads a value written by WriteSignedInt.
func (s *Stream) ReadSignedInt(bitCount int) int32 {
	if s.ReadFlag() {
		return -s.ReadInt(bitCount - 1)
	}

	return s.ReadInt(bitCount - 1)
}

// WriteFloat quantizes f in [0, 1] uniformly to bitCount bits. The scaled
// value is truncated toward zero; callers clamp beforehand when the input
// can stray outside the unit interval.
func (s *Stream) WriteFloat(f float32, bitCount int) {
	s.WriteInt(int32(f*float32(uint32(1)<<uint(bitCount)-1)), bitCount)
}

// ReadFloat reads a value written by WriteFloat. The round-trip error is at
// most 1/(2^bitCount - 1).
func (s *Stream) ReadFloat(bitCount int) float32 {
	return float32(s.ReadInt(bitCount)) / float32(uint32(1)<<uint(bitCount)-1)
}

// WriteSignedFloat quantizes f in [-1, 1] to bitCount bits by remapping it
// onto the unit interval first.
func (s *Stream) WriteSignedFloat(f float32, bitCount int) {
	s.WriteInt(int32((f+1)*0.5*float32(uint32(1)<<uint(bitCount)-1)), bitCount)
}

// ReadSignedFloat reads a value written by WriteSignedFloat.
func (s *Stream) ReadSignedFloat(bitCount int) float32 {
	return float32(s.ReadInt(bitCount))*2/float32(uint32(1)<<uint(bitCount)-1) - 1.0
}

// WriteRangedUint32 writes value from [rangeStart, rangeEnd] as an offset
// from rangeStart in ceil(log2(rangeSize)) bits.
func (s *Stream) WriteRangedUint32(value, rangeStart, rangeEnd uint32) {
	rangeSize := rangeEnd - rangeStart + 1
	rangeBits := ceilLog2(rangeSize)
	s.WriteInt(int32(value-rangeStart), rangeBits)
}

// ReadRangedUint32 reads a value written by WriteRangedUint32 with the same
// range.
func (s *Stream) ReadRangedUint32(rangeStart, rangeEnd uint32) uint32 {
	rangeSize := rangeEnd - rangeStart + 1
	rangeBits := ceilLog2(rangeSize)

	return uint32(s.ReadInt(rangeBits)) + rangeStart
}

// WriteClassID writes a class identifier in bitSize bits. The class catalog
// lives outside this layer; the stream only needs the field width.
// An id that does not fit the field is a programmer bug.
func (s *Stream) WriteClassID(classID uint32, bitSize int) {
	if bitSize < 32 && classID >= uint32(1)<<uint(bitSize) {
		panic("stream: class id out of range for field width")
	}
	s.WriteInt(int32(classID), bitSize)
}

// ReadClassID reads a class identifier written in bitSize bits and returns
// -1 when the decoded id exceeds classCount, signalling a schema mismatch
// between peers.
func (s *Stream) ReadClassID(bitSize int, classCount uint32) int32 {
	ret := s.ReadInt(bitSize)
	if uint32(ret) > classCount {
		return -1
	}

	return ret
}

// WriteUint8 writes an 8-bit value through the bit cursor.
func (s *Stream) WriteUint8(v uint8) {
	b := [1]byte{v}
	s.WriteBits(8, b[:])
}

// ReadUint8 reads an 8-bit value.
func (s *Stream) ReadUint8() uint8 {
	var b [1]byte
	s.ReadBits(8, b[:])

	return b[0]
}

// WriteUint16 writes a 16-bit little-endian value through the bit cursor.
func (s *Stream) WriteUint16(v uint16) {
	var b [2]byte
	wireOrder.PutUint16(b[:], v)
	s.WriteBits(16, b[:])
}

// ReadUint16 reads a 16-bit little-endian value.
func (s *Stream) ReadUint16() uint16 {
	var b [2]byte
	s.ReadBits(16, b[:])

	return wireOrder.Uint16(b[:])
}

// WriteUint32 writes a 32-bit little-endian value through the bit cursor.
func (s *Stream) WriteUint32(v uint32) {
	var b [4]byte
	wireOrder.PutUint32(b[:], v)
	s.WriteBits(32, b[:])
}

// ReadUint32 reads a 32-bit little-endian value.
func (s *Stream) ReadUint32() uint32 {
	var b [4]byte
	s.ReadBits(32, b[:])

	return wireOrder.Uint32(b[:])
}

// WriteUint64 writes a 64-bit little-endian value through the bit cursor.
func (s *Stream) WriteUint64(v uint64) {
	var b [8]byte
	wireOrder.PutUint64(b[:], v)
	s.WriteBits(64, b[:])
}

// ReadUint64 reads a 64-bit little-endian value.
func (s *Stream) ReadUint64() uint64 {
	var b [8]byte
	s.ReadBits(64, b[:])

	return wireOrder.Uint64(b[:])
}

// WriteFloat32 writes a raw 32-bit IEEE float, little-endian.
func (s *Stream) WriteFloat32(f float32) {
	s.WriteUint32(math.Float32bits(f))
}

// ReadFloat32 reads a raw 32-bit IEEE float.
func (s *Stream) ReadFloat32() float32 {
	return math.Float32frombits(s.ReadUint32())
}

// WriteFloat64 writes a raw 64-bit IEEE float, little-endian.
func (s *Stream) WriteFloat64(f float64) {
	s.WriteUint64(math.Float64bits(f))
}

// ReadFloat64 reads a raw 64-bit IEEE float.
func (s *Stream) ReadFloat64() float64 {
	return math.Float64frombits(s.ReadUint64())
}
