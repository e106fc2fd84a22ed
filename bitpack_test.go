package bitpack

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestFacadeRoundTrip(t *testing.T) {
	buf := make([]byte, 128)

	w := New(buf)
	require.True(t, w.WriteFlag(true))
	w.WriteCompressedPoint(mgl32.Vec3{10.0, -3.0, 0.5}, 0.01)
	w.WriteString("player-one", 32)
	require.False(t, w.Error())

	r := New(buf)
	require.True(t, r.ReadFlag())
	p := r.ReadCompressedPoint(0.01)
	require.InDelta(t, 10.0, p.X(), 0.01)
	require.InDelta(t, -3.0, p.Y(), 0.01)
	require.InDelta(t, 0.5, p.Z(), 0.01)
	require.Equal(t, "player-one", r.ReadString())
	require.False(t, r.Error())
}

func TestFacadeGrowthVariants(t *testing.T) {
	rs := NewResize(32, 0)
	defer rs.Close()
	rs.Validate()
	rs.WriteUint32(0xCAFEBABE)
	require.False(t, rs.Error())

	as := NewAppend(32, 0)
	defer as.Close()
	as.Validate(1024)
	require.GreaterOrEqual(t, as.Size(), 1024)
}

func TestFacadePacketStream(t *testing.T) {
	ps := GetPacketStream(0)
	require.Equal(t, MaxPacketDataSize, ps.Size())
	ps.WriteUint16(0xBEEF)
	require.False(t, ps.Error())
}
