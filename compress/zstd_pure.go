//go:build !cgo

package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Packet payloads are tiny next to zstd's defaults, so the pure-Go backend
// keeps one shared coder pair tuned for small frames on a per-tick budget:
// fastest level, one goroutine, a window far below the library default, and
// a decoder memory cap that a packet-sized frame can never reach.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(1),
		zstd.WithWindowSize(4<<10),
	)
	if err != nil {
		panic(fmt.Sprintf("compress: zstd encoder init: %v", err))
	}

	zstdDecoder, err = zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(1<<20),
	)
	if err != nil {
		panic(fmt.Sprintf("compress: zstd decoder init: %v", err))
	}
}

func deflateZstd(payload []byte) []byte {
	// EncodeAll is stateless and safe on the shared encoder.
	return zstdEncoder.EncodeAll(payload, nil)
}

func inflateZstd(body []byte, maxSize int) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(body, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if len(out) > maxSize {
		return nil, ErrPayloadTooLarge
	}

	return out, nil
}
