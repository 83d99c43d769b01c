package huntdiff

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// String returns the normal diff command for d, such as "2a3", "2,4d1" or "2c2".
func (d Difference) String() string {
	switch d.Kind {
	case Add:
		return strconv.Itoa(d.FirstStart) + "a" + lineRange(d.SecondStart, d.SecondEnd)
	case Delete:
		return lineRange(d.FirstStart, d.FirstEnd) + "d" + strconv.Itoa(d.SecondStart)
	case Change:
		return lineRange(d.FirstStart, d.FirstEnd) + "c" + lineRange(d.SecondStart, d.SecondEnd)
	default:
		return "?"
	}
}

func lineRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return strconv.Itoa(start) + "," + strconv.Itoa(end)
}

// WriteNormal writes diffs to w in the normal diff format: a command line
// per record, followed by the removed lines prefixed with "< " and the added
// lines prefixed with "> ", separated by "---" for a change.
func WriteNormal(w io.Writer, diffs []Difference) error {
	bw := bufio.NewWriter(w)
	for _, d := range diffs {
		bw.WriteString(d.String())
		bw.WriteByte('\n')
		writePrefixed(bw, "< ", d.first)
		if d.Kind == Change {
			bw.WriteString("---\n")
		}
		writePrefixed(bw, "> ", d.second)
	}
	return bw.Flush()
}

func writePrefixed(bw *bufio.Writer, prefix string, lines []string) {
	for _, l := range lines {
		bw.WriteString(prefix)
		bw.WriteString(l)
		bw.WriteByte('\n')
	}
}

// FormatNormal returns diffs in the normal diff format.
func FormatNormal(diffs []Difference) string {
	var sb strings.Builder
	_ = WriteNormal(&sb, diffs)
	return sb.String()
}

// Summary holds counts of changes.
type Summary struct {
	Regions   int // number of records
	Additions int // lines only in the second sequence
	Deletions int // lines only in the first sequence
}

// Stats counts the lines added and deleted by diffs. A Change counts its
// first-sequence lines as deletions and its second-sequence lines as additions.
func Stats(diffs []Difference) Summary {
	s := Summary{Regions: len(diffs)}
	for _, d := range diffs {
		s.Deletions += len(d.first)
		s.Additions += len(d.second)
	}
	return s
}
