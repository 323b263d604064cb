package generate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pierrec/lz4/v4"

	"github.com/getcreddy/wordforge/pkg/lexicon"
	"github.com/getcreddy/wordforge/pkg/profile"
	"github.com/getcreddy/wordforge/pkg/store"
	"github.com/getcreddy/wordforge/pkg/wordlist"
)

var janeRex = profile.Profile{First: "Jane", Pet: "Rex"}

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC) }
}

func newTestGenerator(opts ...Option) *Generator {
	return New(append([]Option{WithClock(fixedClock(2024))}, opts...)...)
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		t.Fatalf("output is not newline terminated")
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRunJaneRex(t *testing.T) {
	out := filepath.Join(t.TempDir(), "jane.txt")
	o := Options{MaxLeet: 0}

	res, err := newTestGenerator().Run(context.Background(), janeRex, out, o)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := readLines(t, out)
	set := make(map[string]bool, len(lines))
	for _, l := range lines {
		set[l] = true
		if n := utf8.RuneCountInString(l); n < 4 || n > 64 {
			t.Errorf("line %q has length %d", l, n)
		}
	}

	mustHave := []string{
		"jane", "Jane", "janerex", "rexjane", "Janerex", "janeRex", "jane.rex", "jane_rex",
		"jane!", "Jane1234", "janeRex007", "jane.rex?",
		"jane2014", "2028Jane", "rex2024", "2014rex", "Rex!", "rex_jane2024",
	}
	for _, w := range mustHave {
		if !set[w] {
			t.Errorf("output missing %q", w)
		}
	}

	mustNot := []string{"rex", "Rex", "j4ne", "r3x", "jane2013", "jane2029", "qwerty"}
	for _, w := range mustNot {
		if set[w] {
			t.Errorf("output unexpectedly contains %q", w)
		}
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bytes != info.Size() {
		t.Errorf("reported %d bytes, file has %d", res.Bytes, info.Size())
	}
	if res.Lines != int64(len(lines)) {
		t.Errorf("reported %d lines, file has %d", res.Lines, len(lines))
	}
	if res.BaseWords != 14 {
		t.Errorf("BaseWords = %d, want 14", res.BaseWords)
	}
}

func TestRunDeterministic(t *testing.T) {
	dir := t.TempDir()
	p := profile.Profile{First: "Jane", Birth: "1990"}
	o := Options{MaxLeet: 0, IncludeCommon: true, IncludeKeyboard: true}

	paths := []string{filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"), filepath.Join(dir, "c.txt")}
	for i, path := range paths {
		opts := o
		if i == 2 {
			opts.Workers = 4
		}
		if _, err := newTestGenerator().Run(context.Background(), p, path, opts); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}

	a, _ := os.ReadFile(paths[0])
	for _, path := range paths[1:] {
		b, _ := os.ReadFile(path)
		if !bytes.Equal(a, b) {
			t.Errorf("%s differs from %s", filepath.Base(path), filepath.Base(paths[0]))
		}
	}
}

func TestRunSeedLists(t *testing.T) {
	walks := lexicon.Default().KeyboardWalks
	var buf bytes.Buffer
	o := Options{IncludeKeyboard: true, IncludeCommon: true}
	if _, err := newTestGenerator().RunTo(context.Background(), janeRex, &buf, o); err != nil {
		t.Fatalf("RunTo: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) < 2*len(walks) {
		t.Fatalf("only %d lines", len(lines))
	}
	head := lines[:len(walks)]
	tail := lines[len(lines)-len(walks):]
	for i, w := range walks {
		if head[i] != w {
			t.Errorf("line %d = %q, want %q", i, head[i], w)
		}
		// documented quirk: the list is repeated at the end
		if tail[i] != w {
			t.Errorf("tail line %d = %q, want %q", i, tail[i], w)
		}
	}
}

func TestRunInvalidProfile(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "new.txt")
	_, err := newTestGenerator().Run(context.Background(), profile.Profile{}, missing, DefaultOptions())
	if !errors.Is(err, profile.ErrInvalidProfile) {
		t.Fatalf("err = %v, want ErrInvalidProfile", err)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Errorf("output file was created for an invalid profile")
	}

	existing := filepath.Join(dir, "old.txt")
	if err := os.WriteFile(existing, []byte("keep me\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = newTestGenerator().Run(context.Background(), profile.Profile{Nick: "   "}, existing, DefaultOptions())
	if !errors.Is(err, profile.ErrInvalidProfile) {
		t.Fatalf("err = %v, want ErrInvalidProfile", err)
	}
	if data, _ := os.ReadFile(existing); string(data) != "keep me\n" {
		t.Errorf("existing file was truncated: %q", data)
	}
}

func TestRunUnwritableOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	_, err := newTestGenerator().Run(context.Background(), janeRex, out, DefaultOptions())
	if !errors.Is(err, wordlist.ErrWriteFailure) {
		t.Errorf("err = %v, want ErrWriteFailure", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want the underlying cause preserved", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := newTestGenerator().RunTo(ctx, janeRex, &buf, Options{IncludeKeyboard: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunClampsOptions(t *testing.T) {
	var a, b bytes.Buffer
	g := newTestGenerator()
	if _, err := g.RunTo(context.Background(), profile.Profile{Pet: "Rex"}, &a, Options{MaxLeet: -4, Workers: -1}); err != nil {
		t.Fatalf("RunTo: %v", err)
	}
	if _, err := g.RunTo(context.Background(), profile.Profile{Pet: "Rex"}, &b, Options{MaxLeet: 0, Workers: 1}); err != nil {
		t.Fatalf("RunTo: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("negative options were not clamped to zero leet and one worker")
	}
}

func TestRunCompressed(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "plain.txt")
	packed := filepath.Join(dir, "packed.txt.lz4")

	g := newTestGenerator()
	o := Options{MaxLeet: 0}
	if _, err := g.Run(context.Background(), janeRex, plain, o); err != nil {
		t.Fatalf("Run: %v", err)
	}
	o.Compress = true
	res, err := g.Run(context.Background(), janeRex, packed, o)
	if err != nil {
		t.Fatalf("Run compressed: %v", err)
	}

	f, err := os.Open(packed)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := io.ReadAll(lz4.NewReader(f))
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	want, _ := os.ReadFile(plain)
	if !bytes.Equal(got, want) {
		t.Errorf("decompressed output differs from plain output")
	}
	if res.Bytes != int64(len(want)) {
		t.Errorf("Bytes = %d, want uncompressed size %d", res.Bytes, len(want))
	}
}

func TestRunRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	s, err := store.New(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	defer s.Close()

	out := filepath.Join(dir, "out.txt")
	res, err := newTestGenerator(WithStore(s)).Run(context.Background(), janeRex, out, Options{Label: "jane.yaml"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.RunID == "" {
		t.Fatal("no run id returned")
	}

	r, err := s.GetRun(res.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if r.Status != store.StatusCompleted || r.Label != "jane.yaml" || r.Output != out {
		t.Errorf("run = %+v", r)
	}
	if r.Bytes != res.Bytes || r.Lines != res.Lines || r.BaseWords != res.BaseWords {
		t.Errorf("recorded outcome %d/%d/%d, want %d/%d/%d",
			r.Bytes, r.Lines, r.BaseWords, res.Bytes, res.Lines, res.BaseWords)
	}
	if r.ReferenceYear != 2024 || r.ProfileFields != 2 {
		t.Errorf("ReferenceYear, ProfileFields = %d, %d", r.ReferenceYear, r.ProfileFields)
	}
}

func TestRunCustomCatalog(t *testing.T) {
	cat := lexicon.Default()
	cat.Suffixes = []string{""}
	cat.KeyboardWalks = []string{"hunter2"}

	var buf bytes.Buffer
	g := newTestGenerator(WithCatalog(cat))
	if _, err := g.RunTo(context.Background(), profile.Profile{First: "jane"}, &buf, Options{IncludeKeyboard: true}); err != nil {
		t.Fatalf("RunTo: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "hunter2\n") {
		t.Errorf("custom keyboard walks not used")
	}
	if strings.Contains(out, "jane!\n") {
		t.Errorf("default suffixes used despite custom catalog")
	}
}

// brokenSink accepts limit bytes and then fails every write.
type brokenSink struct {
	limit int
	n     int
}

func (s *brokenSink) Write(p []byte) (int, error) {
	room := s.limit - s.n
	if room <= 0 {
		return 0, errors.New("device full")
	}
	if len(p) > room {
		s.n += room
		return room, errors.New("device full")
	}
	s.n += len(p)
	return len(p), nil
}

func TestRunWriteFailureCounts(t *testing.T) {
	sink := &brokenSink{limit: 100}
	// The first base word expands well past the write buffer, so the sink
	// fails while that batch is still being written.
	res, err := newTestGenerator().RunTo(context.Background(), profile.Profile{First: "jane"}, sink, Options{MaxLeet: 0})
	if !errors.Is(err, wordlist.ErrWriteFailure) {
		t.Fatalf("err = %v, want ErrWriteFailure", err)
	}
	if res == nil {
		t.Fatal("no result returned for a partial run")
	}
	if res.Lines != 0 {
		t.Errorf("Lines = %d, want 0 when no batch was fully written", res.Lines)
	}
	if res.Bytes != 100 {
		t.Errorf("Bytes = %d, want the 100 bytes the sink accepted", res.Bytes)
	}
}
