package fixturegen

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/snappyswift/fixturegen/internal/codec"
	"github.com/snappyswift/fixturegen/internal/codec/noopcodec"
	"github.com/snappyswift/fixturegen/internal/codec/snappycodec"
	"github.com/snappyswift/fixturegen/internal/corpus"
	"github.com/snappyswift/fixturegen/internal/stats"
	"github.com/snappyswift/fixturegen/internal/store/memstore"
)

// failingCodec fails to compress inputs listed in fail.
type failingCodec struct {
	codec.Codec
	fail map[string]bool
}

var errCodec = errors.New("codec exploded")

func (c *failingCodec) Compress(src []byte) ([]byte, error) {
	if c.fail[string(src)] {
		return nil, errCodec
	}
	return c.Codec.Compress(src)
}

// countingCollector records counter totals.
type countingCollector struct {
	stats.Noop
	counters map[string]int64
}

func (c *countingCollector) IncCounter(name string, delta int64) {
	c.counters[name] += delta
}

// failingWriter rejects every write.
type failingWriter struct{}

var errWriter = errors.New("stdout closed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWriter }

func newTestGenerator(t *testing.T, opts ...Option) (*Generator, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	opts = append([]Option{WithOutput(&out)}, opts...)
	gen, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { gen.Close() })
	return gen, &out
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New()
	if !errors.Is(err, ErrNoStore) {
		t.Errorf("New() error = %v, want ErrNoStore", err)
	}
}

func TestNew_RequiresCodec(t *testing.T) {
	_, err := New(WithCodec(nil), WithStore(memstore.New("snappy")))
	if !errors.Is(err, ErrNoCodec) {
		t.Errorf("New() error = %v, want ErrNoCodec", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	mem := memstore.New("snappy")
	gen, _ := newTestGenerator(t, WithStore(mem))

	if gen.Store() != mem {
		t.Error("Store() returned unexpected store")
	}
	if got := gen.Codec().Name(); got != "Snappy" {
		t.Errorf("Codec().Name() = %q, want Snappy", got)
	}
	want := corpus.Default(snappycodec.BlockSize).Names()
	got := gen.Corpus().Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Corpus().Names() = %v, want %v", got, want)
	}
}

func TestNew_OutputDirNotDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(WithOutputDir(path)); err == nil {
		t.Error("New() with a file as output dir succeeded, want error")
	}
}

func TestGenerator_WriteFixture(t *testing.T) {
	dir := t.TempDir()
	gen, out := newTestGenerator(t, WithOutputDir(dir))

	report, err := gen.WriteFixture(context.Background(), corpus.TestCase{
		Name:  "repeated",
		Input: bytes.Repeat([]byte("a"), 100),
	})
	if err != nil {
		t.Fatalf("WriteFixture() error = %v", err)
	}

	path := filepath.Join(dir, "repeated.snappy")
	if report.Location != path {
		t.Errorf("Location = %q, want %q", report.Location, path)
	}
	if report.InputSize != 100 {
		t.Errorf("InputSize = %d, want 100", report.InputSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	if len(data) != report.CompressedSize {
		t.Errorf("artifact size = %d, report says %d", len(data), report.CompressedSize)
	}
	if ratio, ok := report.Ratio(); !ok || ratio <= 1 {
		t.Errorf("Ratio() = %v, %v, want > 1", ratio, ok)
	}

	decoded, err := gen.Codec().Decompress(data)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if !bytes.Equal(decoded, bytes.Repeat([]byte("a"), 100)) {
		t.Error("artifact does not round-trip")
	}

	want := "repeated:\n  Input size: 100 bytes\n  Compressed size: "
	if !strings.HasPrefix(out.String(), want) {
		t.Errorf("output = %q, want prefix %q", out.String(), want)
	}
	if !strings.Contains(out.String(), "  Saved to: "+path+"\n\n") {
		t.Errorf("output = %q, missing saved-to line", out.String())
	}
}

func TestGenerator_WriteFixture_Empty(t *testing.T) {
	mem := memstore.New("snappy")
	gen, _ := newTestGenerator(t, WithStore(mem))

	report, err := gen.WriteFixture(context.Background(), corpus.TestCase{Name: "empty"})
	if err != nil {
		t.Fatalf("WriteFixture() error = %v", err)
	}
	if report.InputSize != 0 {
		t.Errorf("InputSize = %d, want 0", report.InputSize)
	}

	data, err := mem.ReadArtifact(context.Background(), "empty")
	if err != nil {
		t.Fatalf("ReadArtifact() error = %v", err)
	}
	decoded, err := gen.Codec().Decompress(data)
	if err != nil {
		t.Fatalf("Decompress() error = %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("decoded %d bytes, want 0", len(decoded))
	}
}

func TestGenerator_WriteFixture_Idempotent(t *testing.T) {
	dir := t.TempDir()
	gen, _ := newTestGenerator(t, WithOutputDir(dir))
	tc := corpus.TestCase{Name: "hello", Input: []byte("Hello, World!")}

	if _, err := gen.WriteFixture(context.Background(), tc); err != nil {
		t.Fatalf("first WriteFixture() error = %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "hello.snappy"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gen.WriteFixture(context.Background(), tc); err != nil {
		t.Fatalf("second WriteFixture() error = %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "hello.snappy"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("artifacts differ between runs")
	}
}

func TestGenerator_WriteFixture_CompressionFailure(t *testing.T) {
	c := &failingCodec{Codec: snappycodec.New(), fail: map[string]bool{"boom": true}}
	gen, out := newTestGenerator(t, WithCodec(c), WithStore(memstore.New("snappy")))

	_, err := gen.WriteFixture(context.Background(), corpus.TestCase{Name: "bad", Input: []byte("boom")})
	if !errors.Is(err, ErrCompression) {
		t.Errorf("WriteFixture() error = %v, want ErrCompression", err)
	}
	if !errors.Is(err, errCodec) {
		t.Errorf("WriteFixture() error = %v, want cause %v", err, errCodec)
	}
	var ferr *FixtureError
	if !errors.As(err, &ferr) || ferr.Name != "bad" {
		t.Errorf("WriteFixture() error = %#v, want *FixtureError for bad", err)
	}
	if !strings.Contains(out.String(), "bad:\n  ERROR: compression failure: codec exploded") {
		t.Errorf("output = %q, missing error block", out.String())
	}
}

func TestGenerator_WriteFixture_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	gen, _ := newTestGenerator(t, WithOutputDir(dir))

	_, err := gen.WriteFixture(context.Background(), corpus.TestCase{Name: "hello", Input: []byte("hi")})
	if !errors.Is(err, ErrIO) {
		t.Errorf("WriteFixture() error = %v, want ErrIO", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("WriteFixture() error = %v, want os.ErrNotExist cause", err)
	}
}

func TestGenerator_Run(t *testing.T) {
	dir := t.TempDir()
	gen, out := newTestGenerator(t, WithOutputDir(dir))

	summary, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	names := gen.Corpus().Names()
	if len(summary.Reports) != len(names) {
		t.Fatalf("got %d reports, want %d", len(summary.Reports), len(names))
	}
	for i, r := range summary.Reports {
		if r.Name != names[i] {
			t.Errorf("report %d = %q, want %q", i, r.Name, names[i])
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var files []string
	for _, e := range entries {
		files = append(files, e.Name())
	}
	var want []string
	for _, name := range names {
		want = append(want, name+".snappy")
	}
	sort.Strings(want)
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", files, want)
	}

	text := out.String()
	if !strings.HasPrefix(text, "Generating Snappy test data...\n\n") {
		t.Errorf("output missing banner: %q", text[:min(len(text), 60)])
	}
	if !strings.HasSuffix(text, "Test data generation complete!\n") {
		t.Error("output missing completion line")
	}
	if got := strings.Count(text, "  Saved to: "); got != len(names) {
		t.Errorf("printed %d blocks, want %d", got, len(names))
	}
}

func TestGenerator_Run_RoundTrip(t *testing.T) {
	mem := memstore.New("snappy")
	gen, _ := newTestGenerator(t, WithStore(mem))

	if _, err := gen.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, tc := range gen.Corpus().Cases() {
		t.Run(tc.Name, func(t *testing.T) {
			data, err := mem.ReadArtifact(context.Background(), tc.Name)
			if err != nil {
				t.Fatalf("ReadArtifact() error = %v", err)
			}
			decoded, err := gen.Codec().Decompress(data)
			if err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}
			if !bytes.Equal(decoded, tc.Input) {
				t.Errorf("decoded %d bytes, want %d", len(decoded), len(tc.Input))
			}
		})
	}
}

func TestGenerator_Run_LargeExceedsBlock(t *testing.T) {
	mem := memstore.New("snappy")
	gen, _ := newTestGenerator(t, WithStore(mem))

	if _, err := gen.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	large, ok := gen.Corpus().Lookup("large")
	if !ok {
		t.Fatal("default corpus has no large entry")
	}
	if len(large.Input) <= snappycodec.BlockSize {
		t.Errorf("large input = %d bytes, want > %d", len(large.Input), snappycodec.BlockSize)
	}
}

func TestGenerator_Run_AccumulatesFailures(t *testing.T) {
	mem := memstore.New("snappy")
	writeErr := errors.New("disk full")
	mem.FailWrites("hello", writeErr)
	mem.FailWrites("ascii", writeErr)
	gen, out := newTestGenerator(t, WithStore(mem))

	summary, err := gen.Run(context.Background())
	if err == nil {
		t.Fatal("Run() error = nil, want failures")
	}
	if !errors.Is(err, ErrIO) || !errors.Is(err, writeErr) {
		t.Errorf("Run() error = %v, want ErrIO wrapping %v", err, writeErr)
	}
	if len(summary.Failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(summary.Failures))
	}
	if summary.Failures[0].Name != "hello" || summary.Failures[1].Name != "ascii" {
		t.Errorf("failures = %s, %s, want hello, ascii", summary.Failures[0].Name, summary.Failures[1].Name)
	}
	if want := gen.Corpus().Len() - 2; len(summary.Reports) != want {
		t.Errorf("got %d reports, want %d", len(summary.Reports), want)
	}
	if mem.Writes() != gen.Corpus().Len()-2 {
		t.Errorf("store saw %d writes, want %d", mem.Writes(), gen.Corpus().Len()-2)
	}

	text := out.String()
	if !strings.Contains(text, "Test data generation finished with 2 failure(s):\n") {
		t.Errorf("output missing failure summary: %q", text)
	}
	if !strings.Contains(text, "  - hello: io failure: disk full\n") {
		t.Error("output missing hello failure line")
	}
	if strings.Contains(text, "Test data generation complete!") {
		t.Error("output claims success despite failures")
	}
}

func TestGenerator_Run_FailFast(t *testing.T) {
	mem := memstore.New("snappy")
	mem.FailWrites("hello", errors.New("disk full"))
	gen, _ := newTestGenerator(t, WithStore(mem), WithFailFast(true))

	summary, err := gen.Run(context.Background())
	if !errors.Is(err, ErrIO) {
		t.Errorf("Run() error = %v, want ErrIO", err)
	}
	// empty and single_byte precede hello.
	if len(summary.Reports) != 2 {
		t.Errorf("got %d reports, want 2", len(summary.Reports))
	}
	if want := gen.Corpus().Len() - 3; len(summary.Skipped) != want {
		t.Errorf("got %d skipped, want %d", len(summary.Skipped), want)
	}
	if len(summary.Skipped) > 0 && summary.Skipped[0] != "repeated" {
		t.Errorf("first skipped = %q, want repeated", summary.Skipped[0])
	}
}

func TestGenerator_Run_Cancelled(t *testing.T) {
	gen, _ := newTestGenerator(t, WithStore(memstore.New("snappy")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := gen.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(summary.Skipped) != gen.Corpus().Len() {
		t.Errorf("got %d skipped, want %d", len(summary.Skipped), gen.Corpus().Len())
	}
}

func TestGenerator_Run_Parallel(t *testing.T) {
	mem := memstore.New("snappy")
	mem.FailWrites("pattern", errors.New("disk full"))
	gen, out := newTestGenerator(t, WithStore(mem), WithWorkers(4))

	summary, err := gen.Run(context.Background())
	if !errors.Is(err, ErrIO) {
		t.Errorf("Run() error = %v, want ErrIO", err)
	}

	var want []string
	for _, name := range gen.Corpus().Names() {
		if name != "pattern" {
			want = append(want, name)
		}
	}
	var got []string
	for _, r := range summary.Reports {
		got = append(got, r.Name)
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("reports = %v, want corpus order %v", got, want)
	}
	if len(summary.Failures) != 1 || summary.Failures[0].Name != "pattern" {
		t.Errorf("failures = %v, want pattern", summary.Failures)
	}
	if got := strings.Count(out.String(), "  Saved to: "); got != len(want) {
		t.Errorf("printed %d blocks, want %d", got, len(want))
	}
}

func TestGenerator_Run_CustomCorpus(t *testing.T) {
	c := corpus.MustNew(
		corpus.TestCase{Name: "one", Input: []byte("1")},
		corpus.TestCase{Name: "two", Input: []byte("22")},
	)
	mem := memstore.New("raw")
	gen, out := newTestGenerator(t, WithCodec(noopcodec.New()), WithStore(mem), WithCorpus(c))

	summary, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(summary.Reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(summary.Reports))
	}
	if !strings.Contains(out.String(), "two:\n  Input size: 2 bytes\n  Compressed size: 2 bytes\n  Ratio: 1.00x\n  Saved to: mem://two.raw\n\n") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestGenerator_Stats(t *testing.T) {
	collector := &countingCollector{counters: make(map[string]int64)}
	mem := memstore.New("snappy")
	mem.FailWrites("hello", errors.New("disk full"))
	gen, _ := newTestGenerator(t, WithStore(mem), WithStats(collector))

	gen.Run(context.Background())

	n := int64(gen.Corpus().Len())
	if got := collector.counters[stats.MetricFixtures]; got != n-1 {
		t.Errorf("%s = %d, want %d", stats.MetricFixtures, got, n-1)
	}
	if got := collector.counters[stats.MetricFailures]; got != 1 {
		t.Errorf("%s = %d, want 1", stats.MetricFailures, got)
	}
	if collector.counters[stats.MetricInputBytes] == 0 {
		t.Errorf("%s not recorded", stats.MetricInputBytes)
	}
}

func TestGenerator_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mem := memstore.New("snappy")
	mem.FailWrites("hello", errors.New("disk full"))
	gen, _ := newTestGenerator(t, WithStore(mem), WithLogger(zap.New(core)))

	gen.Run(context.Background())

	if got := logs.FilterMessage("fixture written").Len(); got != gen.Corpus().Len()-1 {
		t.Errorf("logged %d written fixtures, want %d", got, gen.Corpus().Len()-1)
	}
	failed := logs.FilterMessage("fixture failed").All()
	if len(failed) != 1 {
		t.Fatalf("logged %d failures, want 1", len(failed))
	}
	if failed[0].Level != zapcore.ErrorLevel {
		t.Errorf("failure logged at %v, want error", failed[0].Level)
	}
	if got := failed[0].ContextMap()["name"]; got != "hello" {
		t.Errorf("failure name = %v, want hello", got)
	}
}

func TestGenerator_WriteFixture_ReportWriteError(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mem := memstore.New("snappy")
	gen, err := New(WithStore(mem), WithOutput(failingWriter{}), WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer gen.Close()

	if _, err := gen.WriteFixture(context.Background(), corpus.TestCase{Name: "hello", Input: []byte("hi")}); err != nil {
		t.Fatalf("WriteFixture() error = %v", err)
	}

	entries := logs.FilterMessage("writing report").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d report write errors, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["name"]; got != "hello" {
		t.Errorf("name = %v, want hello", got)
	}
	if got := entries[0].ContextMap()["error"]; got != errWriter.Error() {
		t.Errorf("error = %v, want %q", got, errWriter.Error())
	}
	if mem.Writes() != 1 {
		t.Errorf("store saw %d writes, want 1", mem.Writes())
	}
}

func TestGenerator_Manifest(t *testing.T) {
	gen, _ := newTestGenerator(t, WithStore(memstore.New("snappy")))

	summary, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	m := gen.Manifest(summary)
	if m.Codec != "Snappy" || m.Extension != "snappy" || m.BlockSize != snappycodec.BlockSize {
		t.Errorf("manifest header = %s/%s/%d", m.Codec, m.Extension, m.BlockSize)
	}
	if len(m.Entries) != gen.Corpus().Len() {
		t.Errorf("manifest has %d entries, want %d", len(m.Entries), gen.Corpus().Len())
	}
	e, ok := m.Lookup("empty")
	if !ok {
		t.Fatal("manifest missing empty")
	}
	// SHA-256 of the empty string.
	if e.InputSHA256 != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Errorf("empty input checksum = %s", e.InputSHA256)
	}
}

func TestGenerator_Close(t *testing.T) {
	gen, err := New(WithStore(memstore.New("snappy")), WithOutput(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := gen.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := gen.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("Close() second call error = %v, want ErrClosed", err)
	}
	if _, err := gen.Run(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Run() after close error = %v, want ErrClosed", err)
	}
	if _, err := gen.WriteFixture(context.Background(), corpus.TestCase{Name: "x"}); !errors.Is(err, ErrClosed) {
		t.Errorf("WriteFixture() after close error = %v, want ErrClosed", err)
	}
}
