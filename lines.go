package huntdiff

import "strings"

// SplitLines splits text into lines on "\n". A final newline does not start
// an extra empty line, and empty text yields an empty, non-nil slice.
// Carriage returns are kept; WithIgnoreSpace makes them insignificant.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
