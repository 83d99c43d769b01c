package huntdiff

import "context"

// buildChain scans the first sequence once and builds the candidate table.
// After it returns, table[k] heads a chain of k candidates that forms a
// longest common subsequence of the two key sequences.
//
// ctx is checked once per first-sequence line; on cancellation the table is
// left incomplete and the context error is returned.
func (dc *diffContext) buildChain(ctx context.Context) error {
	m, n := len(dc.xkeys), len(dc.ykeys)

	dc.arena = make([]candidate, 0, min(m, n)+2)
	dc.table = make([]int32, min(m, n)+2)
	dc.table[0] = dc.addCandidate(0, 0, noCandidate)
	dc.table[1] = dc.addCandidate(m+1, n+1, noCandidate)
	dc.k = 0

	for i := 1; i <= m; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p := dc.assoc[i]; p != 0 {
			dc.merge(i, p)
		}
	}
	return nil
}

// merge extends the candidate table with the matches between first-sequence
// line i and the members of the class starting at sorted position p.
//
// Members are visited in ascending line order. A new candidate is not
// written to the table until the next one is created (or the walk ends), so
// every member of the class is compared against the table as it was before
// line i. Otherwise a later member could build on a candidate from the same
// line i.
func (dc *diffContext) merge(i, p int) {
	r := 0
	pending := dc.table[0]
	for {
		j := dc.sorted[p].line
		s := dc.searchSlot(j, r)
		if s <= dc.k {
			if dc.slotB(s+1) > j {
				c := dc.addCandidate(i, j, dc.table[s])
				dc.table[r] = pending
				r = s + 1
				pending = c
			}
			if s == dc.k {
				dc.table[dc.k+2] = dc.table[dc.k+1]
				dc.k++
				break
			}
		}
		if dc.classEnd[p] {
			break
		}
		p++
	}
	dc.table[r] = pending
}

// searchSlot binary searches table[low..k] for the rightmost slot whose b is
// less than j. It returns k+1 when j is already in the table or no slot in
// range qualifies.
func (dc *diffContext) searchSlot(j, low int) int {
	lo, hi := low, dc.k
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch b := dc.slotB(mid); {
		case b < j:
			lo = mid + 1
		case b > j:
			hi = mid - 1
		default:
			return dc.k + 1
		}
	}
	s := lo - 1
	if s < low || s > dc.k {
		return dc.k + 1
	}
	return s
}

// alignment walks the longest chain and returns J, where J[i] is the
// second-sequence line matched with first-sequence line i, or 0.
// J has room for the sentinel position m+1.
func (dc *diffContext) alignment() []int {
	j := make([]int, len(dc.xkeys)+2)
	for c := dc.table[dc.k]; c != noCandidate; c = dc.arena[c].prev {
		j[dc.arena[c].a] = dc.arena[c].b
	}
	return j
}
