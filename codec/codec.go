package codec

import (
	"encoding/binary"
	"errors"
	"math"
)

// Codec compresses and decompresses byte blocks. Implementations must be
// safe for concurrent use.
//
// Readers only ever decompress; Compress exists for fixture builders and to
// keep the contract symmetric.
type Codec interface {
	Name() string
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "raw":
		return Raw{}, true
	case "lz4":
		return LZ4{}, true
	case "zstd":
		return Zstd{}, true
	case "snappy":
		return Snappy{}, true
	default:
		return nil, false
	}
}

const frameHeaderSize = 8

var (
	// ErrFrameTooSmall is returned when a block is shorter than the frame
	// header.
	ErrFrameTooSmall = errors.New("codec: frame too small for header")
	// ErrFrameTruncated is returned when the frame payload is shorter than
	// its header declares.
	ErrFrameTruncated = errors.New("codec: frame payload truncated")
	// ErrSizeMismatch is returned when decompression yields a different
	// size than the frame header declares.
	ErrSizeMismatch = errors.New("codec: decompressed size mismatch")
	// ErrBlockTooLarge is returned for blocks whose size cannot be
	// represented in the frame header.
	ErrBlockTooLarge = errors.New("codec: block exceeds frame size limit")
)

// frame wraps a payload in the shared block frame. A nil or unhelpful
// compressed payload (saving less than 10%) is stored raw instead.
func frame(src, compressed []byte) ([]byte, error) {
	if int64(len(src)) > math.MaxUint32 {
		return nil, ErrBlockTooLarge
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(src))*0.9 {
		out := make([]byte, frameHeaderSize+len(src))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(src)))
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[frameHeaderSize:], src)

		return out, nil
	}

	out := make([]byte, frameHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(src)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[frameHeaderSize:], compressed)

	return out, nil
}

// parseFrame splits a block frame into its declared uncompressed size and
// payload. stored reports whether the payload is uncompressed.
func parseFrame(src []byte) (rawSize uint32, payload []byte, stored bool, err error) {
	if len(src) < frameHeaderSize {
		return 0, nil, false, ErrFrameTooSmall
	}

	rawSize = binary.LittleEndian.Uint32(src[0:])
	compSize := binary.LittleEndian.Uint32(src[4:])

	if compSize == 0 {
		if int64(len(src)) < frameHeaderSize+int64(rawSize) {
			return 0, nil, false, ErrFrameTruncated
		}

		return rawSize, src[frameHeaderSize : frameHeaderSize+int64(rawSize)], true, nil
	}

	if int64(len(src)) < frameHeaderSize+int64(compSize) {
		return 0, nil, false, ErrFrameTruncated
	}

	return rawSize, src[frameHeaderSize : frameHeaderSize+int64(compSize)], false, nil
}
