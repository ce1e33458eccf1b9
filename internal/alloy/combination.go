package alloy

import "iter"

// Combinations returns the lazy sequence of every k-element subset of items,
// in lexicographic index order. Each subset preserves the relative order of
// items and is a freshly allocated slice.
//
// k > len(items) and k < 0 yield nothing; k == 0 yields one empty subset.
// Ranging over the returned sequence again restarts from the first subset.
func Combinations[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(items)
		if k < 0 || k > n {
			return
		}

		indices := make([]int, k)
		for i := range indices {
			indices[i] = i
		}

		for {
			subset := make([]T, k)
			for i, idx := range indices {
				subset[i] = items[idx]
			}
			if !yield(subset) {
				return
			}
			if !NextCombination(indices, n) {
				return
			}
		}
	}
}

// NextCombination advances indices, a strictly ascending k-subset of [0, n),
// to its lexicographic successor. It reports false, leaving indices
// untouched, when indices already holds the last subset.
func NextCombination(indices []int, n int) bool {
	k := len(indices)
	for i := k - 1; i >= 0; i-- {
		// Position i may grow while enough room remains for the k-1-i trailing indices.
		if indices[i] < n-k+i {
			indices[i]++
			for j := i + 1; j < k; j++ {
				indices[j] = indices[j-1] + 1
			}
			return true
		}
	}
	return false
}

// CountCombinations returns C(n, k), or 0 when k is out of range.
func CountCombinations(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	count := 1
	for i := 1; i <= k; i++ {
		count = count * (n - k + i) / i
	}
	return count
}
