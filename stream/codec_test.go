package stream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadInt_MasksNarrowWidths(t *testing.T) {
	buf := make([]byte, 8)
	s := New(buf)
	s.WriteInt(-1, 8)

	r := New(buf)
	require.Equal(t, int32(0xFF), r.ReadInt(8))
}

func TestReadInt_32BitPreservesSign(t *testing.T) {
	buf := make([]byte, 8)
	s := New(buf)
	s.WriteInt(-123456789, 32)

	r := New(buf)
	require.Equal(t, int32(-123456789), r.ReadInt(32))
}

func TestSignedInt_RoundTrip(t *testing.T) {
	for _, width := range []int{4, 9, 16, 17, 25, 32} {
		maxMag := int32(1)<<uint(width-1) - 1
		for _, v := range []int32{0, 1, -1, maxMag, -maxMag, maxMag / 2, -maxMag / 3} {
			buf := make([]byte, 8)
			s := New(buf)
			s.WriteSignedInt(v, width)
			require.False(t, s.Error())
			require.Equal(t, width, s.BitPosition())

			r := New(buf)
			require.Equal(t, v, r.ReadSignedInt(width), "width %d value %d", width, v)
		}
	}
}

func TestFloat_RoundTripWithinQuantizationStep(t *testing.T) {
	for _, width := range []int{4, 8, 11, 16, 24} {
		step := 1.0 / float64(uint32(1)<<uint(width)-1)
		for _, f := range []float32{0, 0.125, 0.25, 0.5, 0.625, 0.99, 1.0} {
			buf := make([]byte, 8)
			s := New(buf)
			s.WriteFloat(f, width)

			r := New(buf)
			got := r.ReadFloat(width)
			require.LessOrEqual(t, math.Abs(float64(got-f)), step, "width %d f %f", width, f)
		}
	}
}

func TestSignedFloat_RoundTrip(t *testing.T) {
	for _, width := range []int{6, 9, 12} {
		step := 2.0 / float64(uint32(1)<<uint(width)-1)
		for _, f := range []float32{-1, -0.5, -0.01, 0, 0.37, 0.999, 1} {
			buf := make([]byte, 8)
			s := New(buf)
			s.WriteSignedFloat(f, width)

			r := New(buf)
			got := r.ReadSignedFloat(width)
			require.LessOrEqual(t, math.Abs(float64(got-f)), step, "width %d f %f", width, f)
		}
	}
}

func TestRangedUint32_RoundTripAndWidth(t *testing.T) {
	tests := []struct {
		value, start, end uint32
		wantBits          int
	}{
		{0, 0, 0, 0},
		{3, 0, 7, 3},
		{7, 0, 7, 3},
		{5, 0, 8, 4},
		{100, 50, 177, 7},
		{3, 0, 3, 2},
	}

	for _, tt := range tests {
		buf := make([]byte, 8)
		s := New(buf)
		s.WriteRangedUint32(tt.value, tt.start, tt.end)
		require.Equal(t, tt.wantBits, s.BitPosition(), "range [%d,%d]", tt.start, tt.end)

		r := New(buf)
		require.Equal(t, tt.value, r.ReadRangedUint32(tt.start, tt.end))
	}
}

func TestClassID(t *testing.T) {
	buf := make([]byte, 4)
	s := New(buf)
	s.WriteClassID(5, 4)

	r := New(buf)
	require.Equal(t, int32(5), r.ReadClassID(4, 10))

	r = New(buf)
	require.Equal(t, int32(-1), r.ReadClassID(4, 3))
}

func TestWriteClassID_PanicsOnOverflow(t *testing.T) {
	s := New(make([]byte, 4))
	require.Panics(t, func() {
		s.WriteClassID(16, 4)
	})
}

func TestTypedPrimitives_RoundTripUnaligned(t *testing.T) {
	buf := make([]byte, 64)
	s := New(buf)

	s.WriteFlag(true) // force every following write off byte alignment
	s.WriteUint8(0xAB)
	s.WriteUint16(0xBEEF)
	s.WriteUint32(0xDEADBEEF)
	s.WriteUint64(0x0123456789ABCDEF)
	s.WriteFloat32(3.14159)
	s.WriteFloat64(-2.718281828459045)
	require.False(t, s.Error())

	r := New(buf)
	require.True(t, r.ReadFlag())
	require.Equal(t, uint8(0xAB), r.ReadUint8())
	require.Equal(t, uint16(0xBEEF), r.ReadUint16())
	require.Equal(t, uint32(0xDEADBEEF), r.ReadUint32())
	require.Equal(t, uint64(0x0123456789ABCDEF), r.ReadUint64())
	require.Equal(t, float32(3.14159), r.ReadFloat32())
	require.Equal(t, -2.718281828459045, r.ReadFloat64())
	require.False(t, r.Error())
}

func TestCeilLog2(t *testing.T) {
	require.Equal(t, 0, ceilLog2(0))
	require.Equal(t, 0, ceilLog2(1))
	require.Equal(t, 1, ceilLog2(2))
	require.Equal(t, 2, ceilLog2(3))
	require.Equal(t, 2, ceilLog2(4))
	require.Equal(t, 3, ceilLog2(5))
	require.Equal(t, 7, ceilLog2(128))
	require.Equal(t, 8, ceilLog2(129))
}
