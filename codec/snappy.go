package codec

import "github.com/golang/snappy"

// Snappy implements block compression with snappy. Very fast with a low
// ratio.
type Snappy struct{}

// Name returns "snappy".
func (Snappy) Name() string { return "snappy" }

// Compress frames src as a snappy block, falling back to a stored frame
// when the data does not compress.
func (Snappy) Compress(src []byte) ([]byte, error) {
	return frame(src, snappy.Encode(nil, src))
}

// Decompress unframes and decompresses a snappy block.
func (Snappy) Decompress(src []byte) ([]byte, error) {
	rawSize, payload, stored, err := parseFrame(src)
	if err != nil {
		return nil, err
	}

	if stored {
		return payload, nil
	}

	out, err := snappy.Decode(nil, payload)
	if err != nil {
		return nil, err
	}

	if uint32(len(out)) != rawSize {
		return nil, ErrSizeMismatch
	}

	return out, nil
}
