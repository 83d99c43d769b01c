package huntdiff

// extractDifferences converts the alignment j into Add and Delete records.
// lines1 and lines2 are the original lines; records keep sub-slices of them.
//
// j[i] is the second-sequence line matched with first-sequence line i, or 0.
// Matched pairs are strictly increasing in both coordinates.
func extractDifferences(j []int, lines1, lines2 []string) []Difference {
	var diffs []Difference
	m := len(lines1)
	n := len(lines2)
	start1, start2 := 1, 1

	for start1 <= m {
		// Skip matched run
		for start1 <= m && j[start1] == start2 {
			start1++
			start2++
		}
		if start1 > m {
			break
		}

		if j[start1] < start2 {
			// Lines of the first sequence with no counterpart before start2
			end1 := start1 + 1
			for end1 <= m && j[end1] < start2 {
				end1++
			}
			diffs = append(diffs, Difference{
				Kind:        Delete,
				FirstStart:  start1,
				FirstEnd:    end1 - 1,
				SecondStart: start2 - 1,
				first:       lines1[start1-1 : end1-1 : end1-1],
			})
			start1 = end1
		} else {
			// Lines of the second sequence before the next match
			end2 := j[start1]
			diffs = append(diffs, Difference{
				Kind:        Add,
				FirstStart:  start1 - 1,
				SecondStart: start2,
				SecondEnd:   end2 - 1,
				second:      lines2[start2-1 : end2-1 : end2-1],
			})
			start2 = end2
		}
	}

	if start2 <= n {
		diffs = append(diffs, Difference{
			Kind:        Add,
			FirstStart:  m,
			SecondStart: start2,
			SecondEnd:   n,
			second:      lines2[start2-1 : n : n],
		})
	}

	return diffs
}
