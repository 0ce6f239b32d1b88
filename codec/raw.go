package codec

// Raw passes bytes through unchanged. It is the codec for index files whose
// sections are stored uncompressed, which is the common case.
type Raw struct{}

// Name returns "raw".
func (Raw) Name() string { return "raw" }

// Compress returns src unchanged.
func (Raw) Compress(src []byte) ([]byte, error) { return src, nil }

// Decompress returns src unchanged.
func (Raw) Decompress(src []byte) ([]byte, error) { return src, nil }
