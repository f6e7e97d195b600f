package suggest

// Distance returns the edit distance between a and b: the minimum number of
// single-byte insertions, deletions or substitutions turning one into the other.
func Distance(a, b string) int {
	if a == b {
		return 0
	}

	// Keep the row over the shorter string.
	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(b); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(a); i++ {
			above := row[i]

			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			row[i] = min(row[i]+1, row[i-1]+1, diag+cost)
			diag = above
		}
	}

	return row[len(a)]
}

// Similarity maps the distance between a and b onto [0, 1], 1 meaning equal.
func Similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(a, b))/float64(longest)
}
