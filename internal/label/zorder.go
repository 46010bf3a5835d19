package label

// NextZ returns the stacking order for a label created on top of labels:
// one above the current maximum, or 1 for an empty collection.
func NextZ(labels []Label) int {
	top := 0
	for _, l := range labels {
		if l.Z > top {
			top = l.Z
		}
	}
	return top + 1
}

// TopAt returns the index of the highest label under p, or -1.
func TopAt(labels []Label, p Point) int {
	idx := -1
	for i, l := range labels {
		if !l.Contains(p) {
			continue
		}
		if idx == -1 || l.Z > labels[idx].Z {
			idx = i
		}
	}
	return idx
}
