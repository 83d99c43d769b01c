package huntdiff

import (
	"slices"
	"strings"
)

// buildEquivalence sorts the second sequence by key, marks where each class
// of equal lines ends, and associates every first-sequence line with the
// start of its class.
//
// Sorting is stable, so the members of a class are listed in ascending line
// order. The chain builder relies on that when it walks a class.
func (dc *diffContext) buildEquivalence() {
	m, n := len(dc.xkeys), len(dc.ykeys)

	dc.sorted = make([]sortedLine, n+1)
	for i, key := range dc.ykeys {
		dc.sorted[i+1] = sortedLine{line: i + 1, key: key}
	}
	slices.SortStableFunc(dc.sorted[1:], func(x, y sortedLine) int {
		return strings.Compare(x.key, y.key)
	})

	dc.classEnd = make([]bool, n+1)
	dc.classEnd[0] = true
	for p := 1; p <= n; p++ {
		dc.classEnd[p] = p == n || dc.sorted[p].key != dc.sorted[p+1].key
	}

	dc.assoc = make([]int, m+1)
	for i, key := range dc.xkeys {
		dc.assoc[i+1] = dc.findClass(key)
	}
}

// findClass returns the sorted position of the first member of the class
// whose key equals key, or 0 if the second sequence has no such line.
func (dc *diffContext) findClass(key string) int {
	entries := dc.sorted[1:]
	idx, found := slices.BinarySearchFunc(entries, key, func(e sortedLine, k string) int {
		return strings.Compare(e.key, k)
	})
	if !found {
		return 0
	}
	p := idx + 1
	// BinarySearchFunc reports the first match, so the predecessor already
	// ends the previous class; the walk keeps the invariant explicit.
	for !dc.classEnd[p-1] {
		p--
	}
	return p
}
