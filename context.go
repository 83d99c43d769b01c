package huntdiff

// noCandidate marks the end of a candidate chain.
const noCandidate int32 = -1

// candidate is a matched pair of line numbers (a in the first sequence, b in
// the second) linked to the candidate that precedes it in a common
// subsequence. Candidates are never modified once appended to the arena, and
// several chains may share a prefix.
type candidate struct {
	a, b int
	prev int32 // arena index of the previous candidate, or noCandidate
}

// sortedLine is a line of the second sequence in key order.
type sortedLine struct {
	line int // 1-based line number in the second sequence
	key  string
}

// diffContext holds algorithm state during comparison.
// All slices are 1-based; index 0 is a sentinel.
type diffContext struct {
	xkeys, ykeys []string // comparison keys of the two sequences

	sorted   []sortedLine // second-sequence lines sorted by key, [1..n]
	classEnd []bool       // classEnd[p] is true when sorted[p] ends its class
	assoc    []int        // assoc[i] is the sorted position of the class matching line i, or 0

	arena []candidate // all candidates created so far
	table []int32     // candidate table K; arena indices ordered by strictly increasing b
	k     int         // length of the longest common subsequence found so far
}

// newDiffContext creates a new context for comparing two key sequences.
func newDiffContext(a, b []string) *diffContext {
	return &diffContext{
		xkeys: a,
		ykeys: b,
	}
}

// addCandidate appends a candidate to the arena and returns its index.
func (dc *diffContext) addCandidate(a, b int, prev int32) int32 {
	dc.arena = append(dc.arena, candidate{a: a, b: b, prev: prev})
	return int32(len(dc.arena) - 1)
}

// slotB returns the b field of the candidate stored in table slot s.
func (dc *diffContext) slotB(s int) int {
	return dc.arena[dc.table[s]].b
}
