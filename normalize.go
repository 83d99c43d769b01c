package huntdiff

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// normalize returns the comparison keys for both sequences. When no option
// alters the text the input slices are returned as is.
func normalize(lines1, lines2 []string, opts Options) ([]string, []string) {
	if !opts.IgnoreSpace && !opts.IgnoreInnerSpace && !opts.IgnoreCase {
		return lines1, lines2
	}
	n := newNormalizer(opts)
	return n.keys(lines1), n.keys(lines2)
}

// normalizer turns a line into its comparison key.
type normalizer struct {
	opts   Options
	folder cases.Caser
}

func newNormalizer(opts Options) *normalizer {
	n := &normalizer{opts: opts}
	if opts.IgnoreCase {
		n.folder = cases.Fold()
	}
	return n
}

func (n *normalizer) keys(lines []string) []string {
	keys := make([]string, len(lines))
	for i, l := range lines {
		keys[i] = n.key(l)
	}
	return keys
}

func (n *normalizer) key(line string) string {
	switch {
	case n.opts.IgnoreSpace && n.opts.IgnoreInnerSpace:
		line = strings.Join(strings.Fields(line), " ")
	case n.opts.IgnoreSpace:
		line = strings.TrimSpace(line)
	case n.opts.IgnoreInnerSpace:
		line = collapseInnerSpace(line)
	}
	if n.opts.IgnoreCase {
		line = n.folder.String(line)
	}
	return line
}

// collapseInnerSpace replaces every whitespace run between the first and last
// non-space characters with a single space. Leading and trailing whitespace
// is kept as is.
func collapseInnerSpace(s string) string {
	lead := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
	if lead < 0 {
		return s
	}
	last := strings.LastIndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
	_, size := utf8.DecodeRuneInString(s[last:])
	trail := last + size
	return s[:lead] + strings.Join(strings.Fields(s[lead:trail]), " ") + s[trail:]
}
