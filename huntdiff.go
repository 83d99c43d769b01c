// Package huntdiff implements a line-based diff using the Hunt–McIlroy
// longest common subsequence algorithm.
//
// The engine works in four forward passes:
//   - Equivalence classes: lines of the second sequence are sorted so that
//     every first-sequence line can be associated with its class of equal lines
//   - Candidate chain: a single scan over the first sequence builds the
//     longest common, order-preserving subsequence
//   - Extraction: unmatched runs become Add and Delete records
//   - Merging: an adjacent Delete/Add pair at the same position becomes a Change
//
// Comparison can ignore case and whitespace; the returned records always carry
// the original line text.
package huntdiff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrNilInput is returned when a line slice is nil.
	ErrNilInput = errors.New("huntdiff: nil line slice")
	// ErrCancelled is returned when the context is done before the diff completes.
	ErrCancelled = errors.New("huntdiff: diff cancelled")
)

// Kind identifies the type of a Difference.
type Kind int

const (
	// Add means lines of the second sequence are not in the first.
	Add Kind = iota
	// Delete means lines of the first sequence are not in the second.
	Delete
	// Change means a range of the first sequence was replaced by a range of the second.
	Change
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case Add:
		return "Add"
	case Delete:
		return "Delete"
	case Change:
		return "Change"
	default:
		return "Unknown"
	}
}

// Difference describes one edit between two line sequences.
//
// Line numbers are 1-based and ranges are inclusive. For an Add, FirstStart is
// the anchor (the first-sequence line the new lines follow, 0 for the top) and
// FirstEnd is 0. For a Delete, SecondStart is the anchor in the second
// sequence and SecondEnd is 0.
type Difference struct {
	Kind        Kind
	FirstStart  int
	FirstEnd    int
	SecondStart int
	SecondEnd   int

	first  []string // original lines covered in the first sequence
	second []string // original lines covered in the second sequence
}

// FirstLines returns the first-sequence lines covered by d, or nil for an Add.
func (d Difference) FirstLines() []string { return d.first }

// SecondLines returns the second-sequence lines covered by d, or nil for a Delete.
func (d Difference) SecondLines() []string { return d.second }

// FirstText returns the covered first-sequence lines, each terminated by a newline.
func (d Difference) FirstText() string { return joinLines(d.first) }

// SecondText returns the covered second-sequence lines, each terminated by a newline.
func (d Difference) SecondText() string { return joinLines(d.second) }

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	n := len(lines)
	for _, l := range lines {
		n += len(l)
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Options holds the comparison settings. The zero value compares lines exactly.
type Options struct {
	IgnoreSpace      bool // ignore leading and trailing whitespace
	IgnoreInnerSpace bool // treat each internal whitespace run as a single space
	IgnoreCase       bool
}

// options holds configuration for a diff call.
type options struct {
	Options
	logger *slog.Logger
}

func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.DiscardHandler),
	}
}

// Option configures diff behavior.
type Option func(*options)

// WithIgnoreSpace ignores leading and trailing whitespace when comparing lines.
// Default: false.
func WithIgnoreSpace(enabled bool) Option {
	return func(o *options) {
		o.IgnoreSpace = enabled
	}
}

// WithIgnoreInnerSpace treats every run of whitespace inside a line as a
// single space when comparing lines.
// Default: false.
func WithIgnoreInnerSpace(enabled bool) Option {
	return func(o *options) {
		o.IgnoreInnerSpace = enabled
	}
}

// WithIgnoreCase compares lines after Unicode case folding.
// Default: false.
func WithIgnoreCase(enabled bool) Option {
	return func(o *options) {
		o.IgnoreCase = enabled
	}
}

// WithOptions replaces all comparison settings with opts.
func WithOptions(opts Options) Option {
	return func(o *options) {
		o.Options = opts
	}
}

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Diff compares two line sequences and returns the differences in ascending
// order of position.
//
// Identical inputs produce an empty result. If ctx is done before the diff
// completes, Diff returns an error wrapping ErrCancelled and no records.
func Diff(ctx context.Context, lines1, lines2 []string, opts ...Option) ([]Difference, error) {
	if lines1 == nil || lines2 == nil {
		return nil, ErrNilInput
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if ctx.Err() != nil {
		return nil, cancelled(ctx, o.logger)
	}

	keys1, keys2 := normalize(lines1, lines2, o.Options)

	dc := newDiffContext(keys1, keys2)
	dc.buildEquivalence()
	if err := dc.buildChain(ctx); err != nil {
		return nil, cancelled(ctx, o.logger)
	}
	j := dc.alignment()

	diffs := mergeChanges(extractDifferences(j, lines1, lines2))

	o.logger.Debug("hunt diff complete",
		"lines1", len(lines1),
		"lines2", len(lines2),
		"common", dc.k,
		"candidates", len(dc.arena),
		"differences", len(diffs))

	return diffs, nil
}

func cancelled(ctx context.Context, logger *slog.Logger) error {
	cause := context.Cause(ctx)
	logger.Debug("hunt diff cancelled", "cause", cause)
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}
