package corpus

import (
	"bytes"
	"math/rand/v2"
	"strconv"
)

// Repeat returns b repeated n times.
func Repeat(b byte, n int) []byte {
	return bytes.Repeat([]byte{b}, n)
}

// Pattern returns motif repeated n times.
func Pattern(motif string, n int) []byte {
	return bytes.Repeat([]byte(motif), n)
}

// Phrase returns phrase repeated n times, joined by sep.
func Phrase(phrase, sep string, n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteString(sep)
		}
		buf.WriteString(phrase)
	}
	return buf.Bytes()
}

// ByteRange returns every byte value in [from, to), each once.
func ByteRange(from, to int) []byte {
	out := make([]byte, 0, max(to-from, 0))
	for v := from; v < to; v++ {
		out = append(out, byte(v))
	}
	return out
}

// Numbers returns the decimal integers in [start, end), each followed by sep.
func Numbers(start, end int, sep string) []byte {
	var buf bytes.Buffer
	for i := start; i < end; i++ {
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(sep)
	}
	return buf.Bytes()
}

// Run is a single segment of a mixed-run input.
type Run struct {
	Text  string
	Count int
}

// Runs concatenates each run's text repeated Count times.
func Runs(runs ...Run) []byte {
	var buf bytes.Buffer
	for _, r := range runs {
		for i := 0; i < r.Count; i++ {
			buf.WriteString(r.Text)
		}
	}
	return buf.Bytes()
}

// Random returns size pseudo-random bytes from a ChaCha8 stream keyed by seed.
// The output is stable across runs and Go releases.
func Random(size int, seed uint64) []byte {
	var key [32]byte
	for i := 0; i < 8; i++ {
		key[i] = byte(seed >> (8 * i))
	}
	src := rand.NewChaCha8(key)
	out := make([]byte, size)
	for i := 0; i < size; i += 8 {
		v := src.Uint64()
		for j := 0; j < 8 && i+j < size; j++ {
			out[i+j] = byte(v >> (8 * j))
		}
	}
	return out
}
