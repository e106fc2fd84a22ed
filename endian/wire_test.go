package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWire_IsLittleEndian(t *testing.T) {
	var buf [4]byte
	Wire.PutUint32(buf[:], 0xDEADBEEF)
	require.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE}, buf[:])
	require.Equal(t, uint32(0xDEADBEEF), Wire.Uint32(buf[:]))
}

func TestWire_AllWidths(t *testing.T) {
	var b16 [2]byte
	Wire.PutUint16(b16[:], 0x0201)
	require.Equal(t, []byte{0x01, 0x02}, b16[:])

	var b64 [8]byte
	Wire.PutUint64(b64[:], 0x0807060504030201)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b64[:])
}

func TestHostMatchesWire_AgreesWithNativeEndian(t *testing.T) {
	probe := []byte{0x01, 0x02}
	native := binary.NativeEndian.Uint16(probe)
	if HostMatchesWire() {
		require.Equal(t, Wire.Uint16(probe), native)
	} else {
		require.NotEqual(t, Wire.Uint16(probe), native)
	}
}
