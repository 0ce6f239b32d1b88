package codec

import "github.com/pierrec/lz4/v4"

// LZ4 implements block compression with LZ4. Fast with a modest ratio,
// suited to hot sections.
type LZ4 struct{}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }

// Compress frames src as an LZ4 block, falling back to a stored frame when
// the data does not compress.
func (LZ4) Compress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return frame(src, nil)
	}

	dst := make([]byte, lz4.CompressBlockBound(len(src)))

	n, err := lz4.CompressBlock(src, dst, nil)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		// Incompressible.
		return frame(src, nil)
	}

	return frame(src, dst[:n])
}

// Decompress unframes and decompresses an LZ4 block.
func (LZ4) Decompress(src []byte) ([]byte, error) {
	rawSize, payload, stored, err := parseFrame(src)
	if err != nil {
		return nil, err
	}

	if stored {
		return payload, nil
	}

	dst := make([]byte, rawSize)

	n, err := lz4.UncompressBlock(payload, dst)
	if err != nil {
		return nil, err
	}

	if uint32(n) != rawSize {
		return nil, ErrSizeMismatch
	}

	return dst, nil
}
