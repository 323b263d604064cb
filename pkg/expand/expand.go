// Package expand turns base words into password candidates by combining case
// variants, leet substitutions, numeric affixes and the catalog's suffixes.
//
// Output is produced one base word at a time so peak memory stays bounded by
// a single base word's expansion rather than the whole wordlist.
package expand

import (
	"context"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/getcreddy/wordforge/pkg/lexicon"
	"github.com/getcreddy/wordforge/pkg/profile"
)

// Candidate length bounds, inclusive.
const (
	DefaultMinLength = 4
	DefaultMaxLength = 64
)

// MaxLeet is the largest substitution budget the expander accepts.
const MaxLeet = 3

// Batch holds the candidates derived from one base word.
type Batch struct {
	Base       string
	Candidates []string
}

// Expander derives candidates from base words. It is safe for concurrent use.
type Expander struct {
	catalog  *lexicon.Catalog
	numeric  []string
	maxLeet  int
	prefixes bool
	workers  int
	minLen   int
	maxLen   int
	logger   hclog.Logger
}

// Option configures an Expander.
type Option func(*Expander)

// WithMaxLeet sets the substitution budget, clamped to [0, MaxLeet].
func WithMaxLeet(n int) Option {
	return func(e *Expander) { e.maxLeet = ClampLeet(n) }
}

// WithNumeric sets the numeric affixes appended and prepended to each variant.
func WithNumeric(nums []string) Option {
	return func(e *Expander) { e.numeric = nums }
}

// WithPrefixes enables prepending the catalog's prefixes alongside its suffixes.
func WithPrefixes(enabled bool) Option {
	return func(e *Expander) { e.prefixes = enabled }
}

// WithWorkers sets how many base words are expanded concurrently by Stream.
// Values below 1 mean sequential expansion.
func WithWorkers(n int) Option {
	return func(e *Expander) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// WithLengthBounds overrides the inclusive candidate length window.
func WithLengthBounds(lo, hi int) Option {
	return func(e *Expander) {
		if lo < 0 {
			lo = 0
		}
		if hi < lo {
			hi = lo
		}
		e.minLen, e.maxLen = lo, hi
	}
}

// WithLogger sets the logger used for per-base-word progress.
func WithLogger(l hclog.Logger) Option {
	return func(e *Expander) { e.logger = l }
}

// New creates an expander over the given catalog. The catalog must not be
// modified while the expander is in use.
func New(cat *lexicon.Catalog, opts ...Option) *Expander {
	e := &Expander{
		catalog: cat,
		workers: 1,
		minLen:  DefaultMinLength,
		maxLen:  DefaultMaxLength,
		logger:  hclog.NewNullLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ClampLeet bounds a substitution budget to [0, MaxLeet].
func ClampLeet(n int) int {
	switch {
	case n < 0:
		return 0
	case n > MaxLeet:
		return MaxLeet
	}
	return n
}

// Expand returns every candidate for one base word, deduplicated, in
// enumeration order: case variant, leet variant, numeric placement, affix.
func (e *Expander) Expand(base string) []string {
	leetSeen := make(map[string]struct{})
	var variants []string
	for _, cv := range caseVariants(base) {
		for _, v := range e.catalog.Leet.Transform(cv, e.maxLeet) {
			if _, ok := leetSeen[v]; ok {
				continue
			}
			leetSeen[v] = struct{}{}
			variants = append(variants, v)
		}
	}

	size := len(variants) * (1 + 2*len(e.numeric))
	midSeen := make(map[string]struct{}, size)
	mids := make([]string, 0, size)
	addMid := func(s string) {
		if _, ok := midSeen[s]; ok {
			return
		}
		midSeen[s] = struct{}{}
		mids = append(mids, s)
	}
	for _, v := range variants {
		addMid(v)
		for _, n := range e.numeric {
			addMid(v + n)
		}
		for _, n := range e.numeric {
			addMid(n + v)
		}
	}

	affixes := len(e.catalog.Suffixes)
	if e.prefixes {
		affixes += len(e.catalog.Prefixes)
	}
	seen := make(map[string]struct{}, len(mids)*affixes)
	out := make([]string, 0, len(mids)*affixes)
	add := func(s string) {
		if n := utf8.RuneCountInString(s); n < e.minLen || n > e.maxLen {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, m := range mids {
		for _, suf := range e.catalog.Suffixes {
			add(m + suf)
		}
		if e.prefixes {
			for _, pre := range e.catalog.Prefixes {
				add(pre + m)
			}
		}
	}
	return out
}

// Stream expands bases in order and yields one batch per base word. With more
// than one worker, base words are expanded concurrently with a bounded
// look-ahead and re-ordered, so the sequence is identical to the sequential
// one. Cancelling ctx stops the stream between base words and yields ctx.Err().
func (e *Expander) Stream(ctx context.Context, bases []string) iter.Seq2[Batch, error] {
	if e.workers <= 1 {
		return e.sequential(ctx, bases)
	}
	return e.parallel(ctx, bases)
}

func (e *Expander) sequential(ctx context.Context, bases []string) iter.Seq2[Batch, error] {
	return func(yield func(Batch, error) bool) {
		for i, base := range bases {
			if err := ctx.Err(); err != nil {
				yield(Batch{}, err)
				return
			}
			b := Batch{Base: base, Candidates: e.Expand(base)}
			e.logger.Debug("expanded base word", "index", i, "candidates", len(b.Candidates))
			if !yield(b, nil) {
				return
			}
		}
	}
}

func (e *Expander) parallel(ctx context.Context, bases []string) iter.Seq2[Batch, error] {
	return func(yield func(Batch, error) bool) {
		ctx, cancel := context.WithCancel(ctx)

		var g errgroup.Group
		g.SetLimit(e.workers)

		// slots carries one result channel per base word, in input order
		slots := make(chan chan Batch, e.workers)
		go func() {
			defer close(slots)
			for _, base := range bases {
				if ctx.Err() != nil {
					return
				}
				slot := make(chan Batch, 1)
				select {
				case slots <- slot:
				case <-ctx.Done():
					return
				}
				g.Go(func() error {
					slot <- Batch{Base: base, Candidates: e.Expand(base)}
					return nil
				})
			}
		}()

		defer func() {
			cancel()
			for range slots {
			}
			_ = g.Wait()
		}()

		i := 0
		for slot := range slots {
			var b Batch
			select {
			case b = <-slot:
			case <-ctx.Done():
				yield(Batch{}, ctx.Err())
				return
			}
			if err := ctx.Err(); err != nil {
				yield(Batch{}, err)
				return
			}
			e.logger.Debug("expanded base word", "index", i, "candidates", len(b.Candidates))
			i++
			if !yield(b, nil) {
				return
			}
		}
		if err := ctx.Err(); err != nil {
			yield(Batch{}, err)
		}
	}
}

// caseVariants returns base itself followed by its lowercase and capitalized
// forms, without duplicates.
func caseVariants(base string) []string {
	out := []string{base}
	for _, v := range []string{strings.ToLower(base), profile.Capitalize(base)} {
		if v != out[0] && (len(out) < 2 || v != out[1]) {
			out = append(out, v)
		}
	}
	return out
}
