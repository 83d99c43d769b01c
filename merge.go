package huntdiff

// mergeChanges replaces every adjacent Delete/Add pair that covers the same
// position with a single Change record. The input must be ordered as
// produced by extractDifferences; the slice is rewritten in place.
func mergeChanges(diffs []Difference) []Difference {
	if len(diffs) < 2 {
		return diffs
	}

	result := diffs[:1]
	for _, d := range diffs[1:] {
		last := &result[len(result)-1]
		if merged, ok := mergePair(*last, d); ok {
			*last = merged
			continue
		}
		result = append(result, d)
	}
	return result
}

// mergePair reports whether prev and cur form a Delete/Add pair at the same
// first-sequence position and, if so, returns the combined Change.
func mergePair(prev, cur Difference) (Difference, bool) {
	var add, del Difference
	switch {
	case prev.Kind == Delete && cur.Kind == Add:
		del, add = prev, cur
	case prev.Kind == Add && cur.Kind == Delete:
		add, del = prev, cur
	default:
		return Difference{}, false
	}

	// The Add is anchored right after the last deleted line.
	if add.FirstStart-(del.FirstEnd-del.FirstStart) != del.FirstStart {
		return Difference{}, false
	}

	return Difference{
		Kind:        Change,
		FirstStart:  del.FirstStart,
		FirstEnd:    del.FirstEnd,
		SecondStart: add.SecondStart,
		SecondEnd:   add.SecondEnd,
		first:       del.first,
		second:      add.second,
	}, true
}
