package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/s2"
	"github.com/pierrec/lz4/v4"
)

// Method identifies how a packed payload body was compressed. It travels as
// the first byte of the packed packet, so the receiver needs no out-of-band
// negotiation to open it.
type Method uint8

const (
	Raw  Method = 0x0 // Raw carries the payload bytes untouched.
	LZ4  Method = 0x1 // LZ4 block, cheap enough for per-tick payloads.
	S2   Method = 0x2 // S2 block, the fastest of the codecs.
	Zstd Method = 0x3 // Zstandard frame, best ratio for bulk transfers.
)

func (m Method) String() string {
	switch m {
	case Raw:
		return "Raw"
	case LZ4:
		return "LZ4"
	case S2:
		return "S2"
	case Zstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

// MinPackSize is the payload size below which Pack skips the codec pass
// entirely. A tag byte plus codec framing cannot win on payloads this
// small, and per-tick sends should not pay for the attempt.
const MinPackSize = 64

var (
	// ErrPayloadTooLarge marks a frame whose body inflates past the
	// caller's limit; legal peers never produce one.
	ErrPayloadTooLarge = errors.New("compress: unpacked payload exceeds limit")

	// ErrUnknownMethod marks a frame whose tag byte names no method.
	ErrUnknownMethod = errors.New("compress: unknown method tag")

	// ErrTruncatedFrame marks a packet too short to carry its tag byte.
	ErrTruncatedFrame = errors.New("compress: frame shorter than its method tag")
)

// Pack frames payload for the transport with the requested method.
//
// The compressed body is kept only when it is strictly smaller than the
// payload; ties and losses produce a Raw frame instead, so a packed packet
// never costs more than the tag byte of overhead.
func Pack(method Method, payload []byte) ([]byte, error) {
	if method == Raw || len(payload) < MinPackSize {
		return packRaw(payload), nil
	}

	body, err := deflate(method, payload)
	if err != nil {
		return nil, err
	}
	if len(body) >= len(payload) {
		return packRaw(payload), nil
	}

	out := make([]byte, 1+len(body))
	out[0] = byte(method)
	copy(out[1:], body)

	return out, nil
}

func packRaw(payload []byte) []byte {
	out := make([]byte, 1+len(payload))
	out[0] = byte(Raw)
	copy(out[1:], payload)

	return out
}

// Unpack opens a packed packet and returns the payload, which is always a
// fresh slice. maxSize bounds the inflated payload; frames that would
// inflate past it fail with ErrPayloadTooLarge. Raw and S2 frames are
// rejected before allocating and LZ4 never allocates more than maxSize;
// Zstd bodies are decoded in full and checked afterwards.
func Unpack(packet []byte, maxSize int) ([]byte, error) {
	if len(packet) < 1 {
		return nil, ErrTruncatedFrame
	}
	method, body := Method(packet[0]), packet[1:]

	switch method {
	case Raw:
		if len(body) > maxSize {
			return nil, ErrPayloadTooLarge
		}
		out := make([]byte, len(body))
		copy(out, body)

		return out, nil
	case LZ4:
		return inflateLZ4(body, maxSize)
	case S2:
		return inflateS2(body, maxSize)
	case Zstd:
		return inflateZstd(body, maxSize)
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownMethod, packet[0])
	}
}

func deflate(method Method, payload []byte) ([]byte, error) {
	switch method {
	case LZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, dst, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		if n == 0 {
			// Incompressible input; lz4 signals it instead of erroring.
			// Returning the payload itself trips the raw fallback in Pack.
			return payload, nil
		}

		return dst[:n], nil
	case S2:
		return s2.Encode(nil, payload), nil
	case Zstd:
		return deflateZstd(payload), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownMethod, byte(method))
	}
}

// inflateLZ4 decodes an LZ4 block. The bound makes the buffer exact: a
// legal body never inflates past maxSize, so there is no size guesswork
// and a short-buffer error means the frame is corrupt or hostile.
func inflateLZ4(body []byte, maxSize int) ([]byte, error) {
	dst := make([]byte, maxSize)
	n, err := lz4.UncompressBlock(body, dst)
	if err != nil {
		if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, ErrPayloadTooLarge
		}

		return nil, fmt.Errorf("lz4: %w", err)
	}

	return dst[:n], nil
}

// inflateS2 decodes an S2 block, rejecting it before allocation when the
// header already announces a payload past the limit.
func inflateS2(body []byte, maxSize int) ([]byte, error) {
	n, err := s2.DecodedLen(body)
	if err != nil {
		return nil, fmt.Errorf("s2: %w", err)
	}
	if n > maxSize {
		return nil, ErrPayloadTooLarge
	}

	out, err := s2.Decode(nil, body)
	if err != nil {
		return nil, fmt.Errorf("s2: %w", err)
	}

	return out, nil
}
