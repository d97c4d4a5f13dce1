// Package codec defines the compression primitive fixtures are generated with.
package codec

// Codec compresses and decompresses whole byte sequences in one call.
// Implementations must be deterministic for a given input and library version.
type Codec interface {
	// Compress returns the compressed form of src.
	Compress(src []byte) ([]byte, error)
	// Decompress reverses Compress.
	Decompress(src []byte) ([]byte, error)
	// Name returns a human-readable codec name (e.g., "Snappy").
	Name() string
	// Extension returns the artifact file extension without dot (e.g., "snappy").
	Extension() string
	// BlockSize returns the codec's internal block or chunk size in bytes,
	// or 0 if the codec does not split its input.
	BlockSize() int
}
