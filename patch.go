package huntdiff

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrMismatch is returned by Apply when a record does not match the lines it is applied to.
	ErrMismatch = errors.New("huntdiff: difference does not match input")
	// ErrOutOfOrder is returned by Apply when records overlap or are not in ascending order.
	ErrOutOfOrder = errors.New("huntdiff: differences out of order")
)

// Apply applies diffs, as returned by Diff, to lines1 and returns the
// resulting lines. Deleted and changed lines must equal the text recorded in
// each Difference.
func Apply(lines1 []string, diffs []Difference) ([]string, error) {
	if lines1 == nil {
		return nil, ErrNilInput
	}

	out := make([]string, 0, len(lines1))
	pos := 0 // lines of lines1 consumed so far
	for idx, d := range diffs {
		switch d.Kind {
		case Add:
			if d.FirstStart < pos || d.FirstStart > len(lines1) {
				return nil, fmt.Errorf("%w: record %d (%s) at line %d", ErrOutOfOrder, idx, d, pos)
			}
			out = append(out, lines1[pos:d.FirstStart]...)
			out = append(out, d.second...)
			pos = d.FirstStart
		case Delete, Change:
			if d.FirstStart <= pos || d.FirstEnd < d.FirstStart {
				return nil, fmt.Errorf("%w: record %d (%s) at line %d", ErrOutOfOrder, idx, d, pos)
			}
			if d.FirstEnd > len(lines1) {
				return nil, fmt.Errorf("%w: record %d (%s) past end of input (%d lines)", ErrMismatch, idx, d, len(lines1))
			}
			if !slices.Equal(lines1[d.FirstStart-1:d.FirstEnd], d.first) {
				return nil, fmt.Errorf("%w: record %d (%s)", ErrMismatch, idx, d)
			}
			out = append(out, lines1[pos:d.FirstStart-1]...)
			if d.Kind == Change {
				out = append(out, d.second...)
			}
			pos = d.FirstEnd
		default:
			return nil, fmt.Errorf("%w: record %d has unknown kind %d", ErrMismatch, idx, d.Kind)
		}
	}
	return append(out, lines1[pos:]...), nil
}
