//go:build cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// The cgo backend leans on libzstd. Level 1 keeps the codec inside a
// per-tick latency budget; bulk senders that want a deeper level should
// batch into larger frames instead.
func deflateZstd(payload []byte) []byte {
	return gozstd.CompressLevel(nil, payload, 1)
}

func inflateZstd(body []byte, maxSize int) ([]byte, error) {
	out, err := gozstd.Decompress(nil, body)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if len(out) > maxSize {
		return nil, ErrPayloadTooLarge
	}

	return out, nil
}
