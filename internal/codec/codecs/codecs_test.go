package codecs

import (
	"bytes"
	"strings"
	"testing"
)

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		wantExt string
	}{
		{"", "snappy"},
		{"snappy", "snappy"},
		{"s2", "s2"},
		{"s2-better", "s2"},
		{"zstd", "zst"},
		{"gzip", "gz"},
		{"raw", "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ByName(tt.name)
			if err != nil {
				t.Fatalf("ByName(%q) error = %v", tt.name, err)
			}
			if got := c.Extension(); got != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", got, tt.wantExt)
			}
		})
	}
}

func TestByName_Unknown(t *testing.T) {
	_, err := ByName("lz77")
	if err == nil {
		t.Fatal("ByName() expected error for unknown codec")
	}
	if !strings.Contains(err.Error(), "lz77") {
		t.Errorf("error %q should name the codec", err)
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %v", names)
		}
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("A"),
		[]byte("Hello, World!"),
		bytes.Repeat([]byte{'a'}, 100),
		bytes.Repeat([]byte("0123456789"), 30000),
	}

	for _, name := range Names() {
		c, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) error = %v", name, err)
		}
		t.Run(name, func(t *testing.T) {
			for _, input := range inputs {
				compressed, err := c.Compress(input)
				if err != nil {
					t.Fatalf("Compress(%d bytes) error = %v", len(input), err)
				}
				got, err := c.Decompress(compressed)
				if err != nil {
					t.Fatalf("Decompress(%d bytes) error = %v", len(input), err)
				}
				if !bytes.Equal(got, input) {
					t.Errorf("round-trip mismatch for %d-byte input", len(input))
				}
			}
		})
	}
}
