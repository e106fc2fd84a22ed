// Package endian pins the byte order of the packet payload wire format.
//
// Every multi-byte primitive in a payload is little-endian, whatever the
// host: writers convert through Wire when laying value bytes into the bit
// stream and readers convert back out. Nothing in the format is ever
// host-order, which is what lets two peers on different architectures
// splice and read the same bit sequence.
package endian

import "encoding/binary"

// Wire is the byte order of the payload format.
var Wire binary.ByteOrder = binary.LittleEndian

// HostMatchesWire reports whether the host's native order already matches
// the wire, making the conversion through Wire a no-op on this machine.
// Diagnostic only; the codecs convert unconditionally.
func HostMatchesWire() bool {
	probe := []byte{0x01, 0x02}

	return binary.NativeEndian.Uint16(probe) == Wire.Uint16(probe)
}
