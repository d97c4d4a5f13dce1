package corpus

const (
	// DefaultBlockSize is used when the codec does not report a block size.
	DefaultBlockSize = 64 << 10

	// MinLargeSize is the smallest "large" input ever generated.
	MinLargeSize = 10000

	// RandomSeed keys the incompressible entry.
	RandomSeed = 0x5eed
)

// LargeSize returns an input length that crosses at least one internal block
// boundary of a codec with the given block size and ends in a partial block.
func LargeSize(blockSize int) int {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return max(blockSize+blockSize/2, MinLargeSize)
}

// Default returns the standard fixture corpus, calibrated to blockSize.
//
// The entries cover: empty input, a single byte, a short literal, a uniform
// run, a periodic motif, a repeated phrase, the printable ASCII range, a
// multi-block input, mixed runs, structured numeric text and an
// incompressible random block.
func Default(blockSize int) *Corpus {
	return MustNew(
		TestCase{Name: "empty", Input: []byte{}},
		TestCase{Name: "single_byte", Input: []byte("A")},
		TestCase{Name: "hello", Input: []byte("Hello, World!")},
		TestCase{Name: "repeated", Input: Repeat('a', 100)},
		TestCase{Name: "pattern", Input: Pattern("abcdefgh", 20)},
		TestCase{Name: "longer_text", Input: Phrase("The quick brown fox jumps over the lazy dog.", " ", 4)},
		TestCase{Name: "ascii", Input: ByteRange(32, 127)},
		TestCase{Name: "large", Input: Repeat('x', LargeSize(blockSize))},
		TestCase{Name: "mixed", Input: Runs(
			Run{"A", 7}, Run{"b", 5}, Run{"C", 5}, Run{"d", 3}, Run{"E", 2}, Run{"F", 2},
			Run{"1234567890", 1},
		)},
		TestCase{Name: "numbers", Input: Numbers(0, 100, " ")},
		TestCase{Name: "random", Input: Random(4096, RandomSeed)},
	)
}
