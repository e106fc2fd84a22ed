package stream

import (
	"net"

	"github.com/tickwire/bitpack/compress"
	"github.com/tickwire/bitpack/internal/hash"
)

// MaxPacketDataSize is the capacity of the shared packet stream and the
// largest payload a single packet may carry.
const MaxPacketDataSize = 1490

var (
	packetBuffer [MaxPacketDataSize]byte
	packetStream = &Stream{}
)

// GetPacketStream returns the process-wide packet stream, rewound to the
// start and reconfigured to allow writeSize bytes of payload (the full
// packet capacity when writeSize is zero).
//
// The singleton trades thread safety for zero-allocation packet
// construction: all packet composition must happen on one designated
// network thread.
func GetPacketStream(writeSize int) *Stream {
	if writeSize == 0 {
		writeSize = MaxPacketDataSize
	}

	packetStream.SetBuffer(packetBuffer[:], writeSize, writeSize)
	packetStream.SetPosition(0)

	return packetStream
}

// SendPacketStream hands the composed payload to the transport.
func SendPacketStream(conn net.PacketConn, addr net.Addr) (int, error) {
	return conn.WriteTo(packetStream.data[:packetStream.Position()], addr)
}

// SendPackedPacketStream packs the composed payload behind a one-byte
// method tag before handing it to the transport. The stream's bit grammar
// is untouched; the payload travels as an opaque block, raw whenever the
// requested method cannot beat the raw bytes.
func SendPackedPacketStream(conn net.PacketConn, addr net.Addr, method compress.Method) (int, error) {
	packet, err := compress.Pack(method, packetStream.data[:packetStream.Position()])
	if err != nil {
		return 0, err
	}

	return conn.WriteTo(packet, addr)
}

// UnpackPacketPayload opens a packet sent by SendPackedPacketStream. The
// inflated payload is bounded by the packet capacity; frames claiming more
// are rejected as corrupt.
func UnpackPacketPayload(packet []byte) ([]byte, error) {
	return compress.Unpack(packet, MaxPacketDataSize)
}

// PacketDigest returns the xxHash64 of the composed payload, an integrity
// hook for transports that checksum packets end to end.
func PacketDigest() uint64 {
	return hash.Digest(packetStream.data[:packetStream.Position()])
}
