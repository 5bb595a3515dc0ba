package internal

import (
	"iter"
	"slices"
)

// Range yields the integers from lo to hi, inclusive.
func Range(lo, hi int64) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for n := lo; n <= hi; n++ {
			if !yield(n) {
				return
			}
		}
	}
}

// Product yields every pair of values from two sequences, with the first
// sequence varying slowest. The second sequence is iterated once per value
// of the first.
func Product[T1 any, T2 any](seq1 iter.Seq[T1], seq2 iter.Seq[T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for val1 := range seq1 {
			for val2 := range seq2 {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Permutations yields every ordering of items, in lexicographic order of
// their positions. Each yielded slice is a fresh copy.
func Permutations[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		index := make([]int, len(items))
		for n := range index {
			index[n] = n
		}

		perm := make([]T, len(items))
		for {
			for n, i := range index {
				perm[n] = items[i]
			}
			if !yield(slices.Clone(perm)) {
				return
			}

			// Advance to the next permutation of the indexes.
			k := len(index) - 2
			for k >= 0 && index[k] >= index[k+1] {
				k--
			}
			if k < 0 {
				return
			}
			l := len(index) - 1
			for index[l] <= index[k] {
				l--
			}
			index[k], index[l] = index[l], index[k]
			slices.Reverse(index[k+1:])
		}
	}
}
