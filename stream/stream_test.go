package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagIntFloat_WireLayout(t *testing.T) {
	buf := make([]byte, 32)
	s := New(buf)
	deadbeef := uint32(0xDEADBEEF)

	require.True(t, s.WriteFlag(true))
	s.WriteInt(257, 9)
	s.WriteInt(int32(deadbeef), 32)
	require.False(t, s.Error())
	require.Equal(t, 42, s.BitPosition())

	// Bit 0 is the flag, bits 1..9 are 257 = 0b100000001 LSB-first.
	require.True(t, s.TestBit(0))
	require.True(t, s.TestBit(1))
	for bit := 2; bit <= 8; bit++ {
		require.False(t, s.TestBit(bit), "bit %d", bit)
	}
	require.True(t, s.TestBit(9))
	require.Equal(t, byte(0x03), buf[0])

	r := New(buf)
	require.True(t, r.ReadFlag())
	require.Equal(t, int32(257), r.ReadInt(9))
	require.Equal(t, int32(deadbeef), r.ReadInt(32))
	require.False(t, r.Error())
}

func TestWriteInt_AlignedLittleEndian(t *testing.T) {
	buf := make([]byte, 8)
	s := New(buf)
	deadbeef := uint32(0xDEADBEEF)

	s.WriteInt(int32(deadbeef), 32)
	require.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, buf[:4])
}

func TestWriteBits_SplicesAcrossByteBoundary(t *testing.T) {
	buf := make([]byte, 4)
	s := New(buf)

	s.WriteBits(5, []byte{0x15}) // 0b10101
	require.Equal(t, byte(0x15), buf[0])

	s.WriteBits(3, []byte{0x07}) // fills the rest of byte 0
	require.Equal(t, byte(0xF5), buf[0])

	s.WriteBits(11, []byte{0xFF, 0x07}) // all ones across bytes 1..2
	require.Equal(t, byte(0xFF), buf[1])
	require.Equal(t, byte(0x07), buf[2])
	require.Equal(t, 19, s.BitPosition())

	r := New(buf)
	var out [2]byte
	r.ReadBits(5, out[:])
	require.Equal(t, byte(0x15), out[0]&0x1F)
	r.ReadBits(3, out[:])
	require.Equal(t, byte(0x07), out[0]&0x07)
	r.ReadBits(11, out[:])
	require.Equal(t, byte(0xFF), out[0])
	require.Equal(t, byte(0x07), out[1]&0x07)
}

func TestWriteBits_ZeroExtendsTailByte(t *testing.T) {
	buf := []byte{0xFF, 0xFF}
	s := &Stream{}
	s.SetBuffer(buf, len(buf), -1)

	s.WriteBits(5, []byte{0x15})
	// Bits 5..7 of the touched byte are cleared up to the byte boundary.
	require.Equal(t, byte(0x15), buf[0])
	require.Equal(t, byte(0xFF), buf[1])
}

func TestWriteBits_UnalignedZeroExtendsTailByte(t *testing.T) {
	buf := []byte{0x00, 0xFF}
	s := &Stream{}
	s.SetBuffer(buf, len(buf), -1)

	s.WriteFlag(true)
	s.WriteBits(9, []byte{0xFF, 0x01})
	// 10 bits written; bits 2..7 of byte 1 are zero-extended.
	require.Equal(t, byte(0xFF), buf[0])
	require.Equal(t, byte(0x03), buf[1])
}

func TestOverWrite_SetsStickyErrorWithoutMutation(t *testing.T) {
	buf := make([]byte, 1)
	s := New(buf)

	s.WriteBits(9, []byte{0xFF, 0x01})
	require.True(t, s.Error())
	require.Equal(t, 0, s.BitPosition())
	require.Equal(t, byte(0), buf[0])

	// In-range operations still proceed but the flag stays set.
	s.WriteFlag(true)
	require.True(t, s.Error())
	require.Equal(t, 1, s.BitPosition())
}

func TestOverRead_SetsStickyErrorAndZeroesDestination(t *testing.T) {
	buf := []byte{0xFF}
	s := New(buf)

	dst := []byte{0xAA, 0xAA}
	s.ReadBits(9, dst)
	require.True(t, s.Error())
	require.Equal(t, 0, s.BitPosition())
	require.Equal(t, []byte{0x00, 0x00}, dst)

	r := New(buf)
	r.ReadBits(8, dst)
	require.False(t, r.Error())
	r.ReadBits(1, dst)
	require.True(t, r.Error())
}

func TestWriteFlag_OverWrite(t *testing.T) {
	s := New(make([]byte, 1))
	for i := 0; i < 8; i++ {
		s.WriteFlag(true)
	}
	require.False(t, s.Error())
	require.False(t, s.WriteFlag(true))
	require.True(t, s.Error())
	require.Equal(t, 8, s.BitPosition())
}

func TestSetBitTestBit_IndependentOfCursor(t *testing.T) {
	buf := make([]byte, 4)
	s := New(buf)
	s.SetPosition(2)

	s.SetBit(13, true)
	require.True(t, s.TestBit(13))
	require.Equal(t, byte(0x20), buf[1])
	require.Equal(t, 16, s.BitPosition())

	s.SetBit(13, false)
	require.False(t, s.TestBit(13))
	require.Equal(t, byte(0x00), buf[1])
}

func TestPositionAccessors(t *testing.T) {
	s := New(make([]byte, 16))

	s.WriteBits(9, []byte{0xFF, 0x01})
	require.Equal(t, 9, s.BitPosition())
	require.Equal(t, 2, s.Position())

	s.SetPosition(4)
	require.Equal(t, 32, s.BitPosition())
	require.Equal(t, 4, s.Position())

	s.SetBitPosition(3)
	require.Equal(t, 3, s.BitPosition())
	require.Equal(t, 1, s.Position())
}

func TestSetBuffer_DerivesCeilings(t *testing.T) {
	buf := make([]byte, 8)
	s := &Stream{}

	s.SetBuffer(buf, 4, 8)
	require.Equal(t, 4, s.Size())
	require.Equal(t, 4, s.ReadByteSize())

	// Reads stop at the logical size, writes at the max size.
	s.ReadBits(32, make([]byte, 4))
	require.False(t, s.Error())
	s.SetPosition(0)
	s.WriteBits(64, make([]byte, 8))
	require.False(t, s.Error())
}

func TestWriteReadBytes_Unaligned(t *testing.T) {
	buf := make([]byte, 16)
	s := New(buf)

	s.WriteFlag(true)
	s.WriteBytes([]byte("abc"))
	require.False(t, s.Error())

	r := New(buf)
	require.True(t, r.ReadFlag())
	out := make([]byte, 3)
	r.ReadBytes(out)
	require.Equal(t, []byte("abc"), out)
}

func TestClear(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	s := New(buf)
	s.SetPosition(2)

	s.Clear()
	require.Equal(t, []byte{0, 0, 0, 0}, buf)
	require.Equal(t, 2, s.Position())
}

func TestIdenticalCallSequences_ProduceIdenticalBuffers(t *testing.T) {
	run := func(buf []byte) {
		s := New(buf)
		s.WriteFlag(true)
		s.WriteInt(-1234, 24)
		s.WriteFloat(0.625, 11)
		s.WriteFlag(false)
		s.WriteSignedInt(-77, 9)
		s.WriteUint64(0x0123456789ABCDEF)
		s.WriteBytes([]byte{0xA5})
		require.False(t, s.Error())
	}

	a := make([]byte, 32)
	b := make([]byte, 32)
	run(a)
	run(b)
	require.Equal(t, a, b)
}

func TestBytesAndBuffer(t *testing.T) {
	buf := make([]byte, 8)
	s := New(buf)
	s.WriteUint16(0xBEEF)

	require.Len(t, s.Buffer(), 8)
	require.Len(t, s.Bytes(), 6)
	require.Equal(t, byte(0xEF), s.Buffer()[0])
}
