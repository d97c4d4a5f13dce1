// Package corpus defines the ordered set of named inputs that fixtures are
// generated from.
package corpus

import (
	"errors"
	"fmt"
	"regexp"
)

// MaxNameLength bounds entry names so artifact filenames stay portable.
const MaxNameLength = 128

// Sentinel errors for corpus validation.
var (
	// ErrInvalidName indicates a name that cannot be used as a filename stem.
	ErrInvalidName = errors.New("corpus: invalid entry name")

	// ErrDuplicateName indicates two entries share a name.
	ErrDuplicateName = errors.New("corpus: duplicate entry name")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// TestCase pairs a unique, filesystem-safe name with an input.
type TestCase struct {
	Name  string
	Input []byte
}

// Corpus is an immutable, ordered sequence of test cases with unique names.
// A Corpus is safe for concurrent use.
type Corpus struct {
	cases []TestCase
	index map[string]int
}

// New builds a corpus from cases, in the given order.
// Inputs are copied so later mutation by the caller has no effect.
func New(cases ...TestCase) (*Corpus, error) {
	c := &Corpus{
		cases: make([]TestCase, 0, len(cases)),
		index: make(map[string]int, len(cases)),
	}
	for _, tc := range cases {
		if err := ValidateName(tc.Name); err != nil {
			return nil, err
		}
		if _, ok := c.index[tc.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, tc.Name)
		}
		c.index[tc.Name] = len(c.cases)
		c.cases = append(c.cases, TestCase{
			Name:  tc.Name,
			Input: append([]byte{}, tc.Input...),
		})
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(cases ...TestCase) *Corpus {
	c, err := New(cases...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of entries.
func (c *Corpus) Len() int {
	return len(c.cases)
}

// Cases returns the entries in declaration order.
// The returned slice and inputs are copies.
func (c *Corpus) Cases() []TestCase {
	out := make([]TestCase, len(c.cases))
	for i, tc := range c.cases {
		out[i] = TestCase{Name: tc.Name, Input: append([]byte{}, tc.Input...)}
	}
	return out
}

// Names returns the entry names in declaration order.
func (c *Corpus) Names() []string {
	names := make([]string, len(c.cases))
	for i, tc := range c.cases {
		names[i] = tc.Name
	}
	return names
}

// Lookup returns the entry with the given name.
func (c *Corpus) Lookup(name string) (TestCase, bool) {
	i, ok := c.index[name]
	if !ok {
		return TestCase{}, false
	}
	tc := c.cases[i]
	return TestCase{Name: tc.Name, Input: append([]byte{}, tc.Input...)}, true
}

// ValidateName reports whether name can be used directly as a filename stem.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case len(name) > MaxNameLength:
		return fmt.Errorf("%w: %q is longer than %d bytes", ErrInvalidName, name, MaxNameLength)
	case !namePattern.MatchString(name):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
