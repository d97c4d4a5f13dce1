package corpus

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"empty_case", false},
		{"single_byte", false},
		{"v1.2-final", false},
		{"A", false},
		{"", true},
		{".", true},
		{"..", true},
		{".hidden", true},
		{"a/b", true},
		{`a\b`, true},
		{"has space", true},
		{"colon:name", true},
		{strings.Repeat("n", MaxNameLength), false},
		{strings.Repeat("n", MaxNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("ValidateName(%q) error = %v, want ErrInvalidName", tt.name, err)
			}
		})
	}
}

func TestNew_DuplicateName(t *testing.T) {
	_, err := New(
		TestCase{Name: "a", Input: []byte("1")},
		TestCase{Name: "a", Input: []byte("2")},
	)
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("New() error = %v, want ErrDuplicateName", err)
	}
}

func TestNew_InvalidName(t *testing.T) {
	_, err := New(TestCase{Name: "../escape", Input: nil})
	if !errors.Is(err, ErrInvalidName) {
		t.Errorf("New() error = %v, want ErrInvalidName", err)
	}
}

func TestCorpus_Immutable(t *testing.T) {
	input := []byte("original")
	c, err := New(TestCase{Name: "x", Input: input})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Mutating the caller's slice must not leak into the corpus.
	input[0] = 'X'
	got, _ := c.Lookup("x")
	if string(got.Input) != "original" {
		t.Errorf("Lookup().Input = %q, want %q", got.Input, "original")
	}

	// Mutating a returned case must not leak either.
	cases := c.Cases()
	cases[0].Input[0] = 'Y'
	got, _ = c.Lookup("x")
	if string(got.Input) != "original" {
		t.Errorf("Lookup().Input after Cases() mutation = %q", got.Input)
	}
}

func TestCorpus_Order(t *testing.T) {
	c := MustNew(
		TestCase{Name: "b"},
		TestCase{Name: "a"},
		TestCase{Name: "c"},
	)
	want := []string{"b", "a", "c"}
	got := c.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestCorpus_LookupMissing(t *testing.T) {
	c := MustNew()
	if _, ok := c.Lookup("missing"); ok {
		t.Error("Lookup() found entry in empty corpus")
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew() did not panic on invalid name")
		}
	}()
	MustNew(TestCase{Name: ""})
}

func TestBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"Repeat", Repeat('a', 3), []byte("aaa")},
		{"Repeat zero", Repeat('a', 0), []byte{}},
		{"Pattern", Pattern("ab", 3), []byte("ababab")},
		{"Phrase", Phrase("hi", " ", 3), []byte("hi hi hi")},
		{"Phrase zero", Phrase("hi", " ", 0), []byte{}},
		{"ByteRange", ByteRange(65, 70), []byte("ABCDE")},
		{"ByteRange empty", ByteRange(10, 10), []byte{}},
		{"Numbers", Numbers(8, 12, ","), []byte("8,9,10,11,")},
		{"Runs", Runs(Run{"A", 2}, Run{"b", 3}, Run{"12", 1}), []byte("AAbbb12")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !bytes.Equal(tt.got, tt.want) {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	a := Random(1000, 7)
	b := Random(1000, 7)
	c := Random(1000, 8)

	if len(a) != 1000 {
		t.Fatalf("len = %d, want 1000", len(a))
	}
	if !bytes.Equal(a, b) {
		t.Error("Random() is not deterministic for the same seed")
	}
	if bytes.Equal(a, c) {
		t.Error("Random() returned identical output for different seeds")
	}
	if got := Random(5, 7); !bytes.Equal(got, a[:5]) {
		t.Errorf("Random(5) = %x, want prefix %x", got, a[:5])
	}
}
