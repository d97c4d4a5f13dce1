package corpus

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// MaxInputSize bounds the input any manifest entry may generate.
const MaxInputSize = 64 << 20

// ErrInputTooLarge indicates a manifest entry would generate more than
// MaxInputSize bytes.
var ErrInputTooLarge = errors.New("corpus: input too large")

// manifest is the on-disk form of a corpus.
//
//	entries:
//	  - name: hello
//	    text: "Hello, World!"
//	  - name: repeated
//	    repeat: {text: "a", count: 100}
type manifest struct {
	Entries []entrySpec `yaml:"entries"`
}

type entrySpec struct {
	Name    string       `yaml:"name"`
	Text    *string      `yaml:"text,omitempty"`
	Repeat  *runSpec     `yaml:"repeat,omitempty"`
	Range   *rangeSpec   `yaml:"range,omitempty"`
	Numbers *numbersSpec `yaml:"numbers,omitempty"`
	Random  *randomSpec  `yaml:"random,omitempty"`
	Runs    []runSpec    `yaml:"runs,omitempty"`
	File    string       `yaml:"file,omitempty"`
}

type runSpec struct {
	Text  string `yaml:"text"`
	Count int    `yaml:"count"`
}

type rangeSpec struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type numbersSpec struct {
	Start     int     `yaml:"start"`
	End       int     `yaml:"end"`
	Separator *string `yaml:"separator,omitempty"`
}

type randomSpec struct {
	Size int    `yaml:"size"`
	Seed uint64 `yaml:"seed"`
}

// LoadFile reads a YAML corpus manifest from path.
// Relative "file" entries are resolved against the manifest's directory.
func LoadFile(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus manifest: %w", err)
	}
	return load(data, filepath.Dir(path))
}

// Load reads a YAML corpus manifest from r.
// Relative "file" entries are resolved against the working directory.
func Load(r io.Reader) (*Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading corpus manifest: %w", err)
	}
	return load(data, ".")
}

func load(data []byte, baseDir string) (*Corpus, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing corpus manifest: %w", err)
	}

	cases := make([]TestCase, 0, len(m.Entries))
	for i, e := range m.Entries {
		input, err := e.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Name, err)
		}
		cases = append(cases, TestCase{Name: e.Name, Input: input})
	}
	return New(cases...)
}

// build generates the input bytes for e. Exactly one generator must be set.
func (e entrySpec) build(baseDir string) ([]byte, error) {
	var (
		input []byte
		set   int
	)
	if e.Text != nil {
		input = []byte(*e.Text)
		set++
	}
	if e.Repeat != nil {
		if e.Repeat.Count < 0 {
			return nil, fmt.Errorf("repeat: negative count %d", e.Repeat.Count)
		}
		if e.Repeat.Count > MaxInputSize/max(len(e.Repeat.Text), 1) {
			return nil, fmt.Errorf("repeat: %w: count %d", ErrInputTooLarge, e.Repeat.Count)
		}
		input = Pattern(e.Repeat.Text, e.Repeat.Count)
		set++
	}
	if e.Range != nil {
		if e.Range.From < 0 || e.Range.To > 256 || e.Range.From > e.Range.To {
			return nil, fmt.Errorf("range: [%d, %d) is not within [0, 256)", e.Range.From, e.Range.To)
		}
		input = ByteRange(e.Range.From, e.Range.To)
		set++
	}
	if e.Numbers != nil {
		sep := " "
		if e.Numbers.Separator != nil {
			sep = *e.Numbers.Separator
		}
		if err := checkNumbers(e.Numbers.Start, e.Numbers.End, sep); err != nil {
			return nil, err
		}
		input = Numbers(e.Numbers.Start, e.Numbers.End, sep)
		set++
	}
	if e.Random != nil {
		if e.Random.Size < 0 {
			return nil, fmt.Errorf("random: negative size %d", e.Random.Size)
		}
		if e.Random.Size > MaxInputSize {
			return nil, fmt.Errorf("random: %w: size %d", ErrInputTooLarge, e.Random.Size)
		}
		input = Random(e.Random.Size, e.Random.Seed)
		set++
	}
	if e.Runs != nil {
		runs := make([]Run, len(e.Runs))
		total := 0
		for i, r := range e.Runs {
			if r.Count < 0 {
				return nil, fmt.Errorf("runs[%d]: negative count %d", i, r.Count)
			}
			if r.Count > (MaxInputSize-total)/max(len(r.Text), 1) {
				return nil, fmt.Errorf("runs[%d]: %w: count %d", i, ErrInputTooLarge, r.Count)
			}
			total += r.Count * len(r.Text)
			runs[i] = Run{Text: r.Text, Count: r.Count}
		}
		input = Runs(runs...)
		set++
	}
	if e.File != "" {
		path := e.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		if info.Size() > MaxInputSize {
			return nil, fmt.Errorf("file: %w: %d bytes", ErrInputTooLarge, info.Size())
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		input = data
		set++
	}

	switch set {
	case 0:
		return nil, fmt.Errorf("no input generator set")
	case 1:
		if input == nil {
			input = []byte{}
		}
		return input, nil
	default:
		return nil, fmt.Errorf("%d input generators set, want exactly one", set)
	}
}

// checkNumbers rejects ranges whose output could exceed MaxInputSize. Every
// number is charged the width of the wider bound, so the estimate never
// undercounts.
func checkNumbers(start, end int, sep string) error {
	if end <= start {
		return nil
	}
	if start < 0 && end > math.MaxInt+start {
		return fmt.Errorf("numbers: %w: [%d, %d)", ErrInputTooLarge, start, end)
	}
	width := max(len(strconv.Itoa(start)), len(strconv.Itoa(end))) + len(sep)
	if end-start > MaxInputSize/width {
		return fmt.Errorf("numbers: %w: [%d, %d)", ErrInputTooLarge, start, end)
	}
	return nil
}
