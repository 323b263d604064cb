// Package generate runs the full wordlist pipeline for one profile: base-word
// derivation, expansion and streaming output, with optional run history.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pierrec/lz4/v4"

	"github.com/getcreddy/wordforge/pkg/expand"
	"github.com/getcreddy/wordforge/pkg/lexicon"
	"github.com/getcreddy/wordforge/pkg/numeric"
	"github.com/getcreddy/wordforge/pkg/profile"
	"github.com/getcreddy/wordforge/pkg/store"
	"github.com/getcreddy/wordforge/pkg/wordlist"
)

// Options controls a generation run. Out-of-range values are clamped.
type Options struct {
	MaxLeet         int  // substitution budget, 0-3
	IncludeCommon   bool // append the common-password list at the end
	IncludeKeyboard bool // write the keyboard walks first
	IncludePrefixes bool // also prepend the catalog prefixes
	Workers         int  // base words expanded concurrently, at least 1
	Compress        bool // wrap file output in an lz4 frame
	Label           string
}

// DefaultOptions mirrors the CLI defaults.
func DefaultOptions() Options {
	return Options{
		MaxLeet:         1,
		IncludeCommon:   true,
		IncludeKeyboard: true,
		Workers:         1,
	}
}

func (o Options) clamped() Options {
	o.MaxLeet = expand.ClampLeet(o.MaxLeet)
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}

// Result summarises a completed run. Bytes counts uncompressed wordlist bytes.
type Result struct {
	Output    string
	Bytes     int64
	Lines     int64
	BaseWords int
	RunID     string
}

// Generator runs wordlist generation.
type Generator struct {
	catalog *lexicon.Catalog
	logger  hclog.Logger
	now     func() time.Time
	store   *store.Store
}

// Option configures a Generator.
type Option func(*Generator)

// WithCatalog replaces the built-in lexicon.
func WithCatalog(c *lexicon.Catalog) Option {
	return func(g *Generator) { g.catalog = c }
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithClock sets the clock the reference year is taken from.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithStore records every run in s.
func WithStore(s *store.Store) Option {
	return func(g *Generator) { g.store = s }
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		catalog: lexicon.Default(),
		logger:  hclog.NewNullLogger(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Run writes the wordlist for p to the file at out, creating or truncating
// it. An empty profile fails with profile.ErrInvalidProfile before the file
// is touched. Failures to open or write the file wrap wordlist.ErrWriteFailure;
// partial output is left in place.
func (g *Generator) Run(ctx context.Context, p profile.Profile, out string, o Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Create(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wordlist.ErrWriteFailure, err)
	}

	var sink io.Writer = f
	var zw *lz4.Writer
	if o.Compress {
		zw = lz4.NewWriter(f)
		sink = zw
	}

	res, err := g.run(ctx, p, sink, out, o)

	if zw != nil {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", wordlist.ErrWriteFailure, cerr)
		}
	}
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("%w: %w", wordlist.ErrWriteFailure, cerr)
	}
	return res, err
}

// RunTo writes the wordlist for p to sink.
func (g *Generator) RunTo(ctx context.Context, p profile.Profile, sink io.Writer, o Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return g.run(ctx, p, sink, "", o)
}

func (g *Generator) run(ctx context.Context, p profile.Profile, sink io.Writer, out string, o Options) (*Result, error) {
	bases, err := profile.Normalize(p)
	if err != nil {
		return nil, err
	}
	o = o.clamped()
	year := g.now().Year()

	logger := g.logger.With("output", out)
	logger.Info("generating wordlist",
		"base_words", len(bases),
		"max_leet", o.MaxLeet,
		"workers", o.Workers,
		"reference_year", year,
	)

	res := &Result{Output: out, BaseWords: len(bases)}
	runID := g.startRun(p, out, o, year)
	res.RunID = runID

	exp := expand.New(g.catalog,
		expand.WithMaxLeet(o.MaxLeet),
		expand.WithNumeric(numeric.Generate(year)),
		expand.WithPrefixes(o.IncludePrefixes),
		expand.WithWorkers(o.Workers),
		expand.WithLogger(logger.Named("expand")),
	)

	var lines int64
	candidates := func(yield func([]string, error) bool) {
		for b, err := range exp.Stream(ctx, bases) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(b.Candidates, nil) {
				return
			}
			lines += int64(len(b.Candidates))
		}
	}

	start := time.Now()
	n, err := wordlist.Write(sink, candidates, g.catalog.KeyboardWalks, o.IncludeKeyboard, o.IncludeCommon)
	res.Bytes = n
	walks := int64(len(g.catalog.KeyboardWalks))
	if o.IncludeKeyboard {
		lines += walks
	}
	if o.IncludeCommon && err == nil {
		lines += walks
	}
	res.Lines = lines

	g.finishRun(runID, res, err)

	if err != nil {
		logger.Error("wordlist generation failed", "bytes", n, "error", err)
		return res, err
	}

	logger.Info("wordlist written", "bytes", n, "lines", lines, "elapsed", time.Since(start))
	return res, nil
}

func (g *Generator) startRun(p profile.Profile, out string, o Options, year int) string {
	if g.store == nil {
		return ""
	}
	label := o.Label
	if label == "" {
		label = "flags"
	}
	r, err := g.store.StartRun(store.RunParams{
		Label:           label,
		Output:          out,
		MaxLeet:         o.MaxLeet,
		IncludeCommon:   o.IncludeCommon,
		IncludeKeyboard: o.IncludeKeyboard,
		IncludePrefixes: o.IncludePrefixes,
		Workers:         o.Workers,
		ReferenceYear:   year,
		ProfileFields:   len(p.Fields()),
	})
	if err != nil {
		g.logger.Warn("failed to record run", "error", err)
		return ""
	}
	return r.ID
}

func (g *Generator) finishRun(id string, res *Result, runErr error) {
	if g.store == nil || id == "" {
		return
	}
	err := g.store.FinishRun(id, store.RunOutcome{
		BaseWords: res.BaseWords,
		Lines:     res.Lines,
		Bytes:     res.Bytes,
		Err:       runErr,
	})
	if err != nil {
		g.logger.Warn("failed to record run outcome", "run_id", id, "error", err)
	}
}
