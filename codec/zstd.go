package codec

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Encoder and decoder instances are expensive to build, so they are pooled.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}

	// SpeedDefault balances ratio against speed.
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))

	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}

	dec, _ := zstd.NewReader(nil)

	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Zstd implements block compression with zstandard. Better ratio than LZ4,
// suited to cold sections.
type Zstd struct{}

// Name returns "zstd".
func (Zstd) Name() string { return "zstd" }

// Compress frames src as a zstd block, falling back to a stored frame when
// the data does not compress.
func (Zstd) Compress(src []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return frame(src, enc.EncodeAll(src, nil))
}

// Decompress unframes and decompresses a zstd block.
func (Zstd) Decompress(src []byte) ([]byte, error) {
	rawSize, payload, stored, err := parseFrame(src)
	if err != nil {
		return nil, err
	}

	if stored {
		return payload, nil
	}

	dec := getZstdDecoder()
	defer putZstdDecoder(dec)

	out, err := dec.DecodeAll(payload, make([]byte, 0, rawSize))
	if err != nil {
		return nil, err
	}

	if uint32(len(out)) != rawSize {
		return nil, ErrSizeMismatch
	}

	return out, nil
}
