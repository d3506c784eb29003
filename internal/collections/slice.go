// Package collections provides generic collection utilities.
package collections

import (
	"cmp"
	"slices"
)

// Concat concatenates multiple slices of the same type into a single slice.
// It preserves the order of elements from the input slices.
func Concat[T any](parts ...[]T) []T {
	var totalLen int
	for _, s := range parts {
		totalLen += len(s)
	}

	result := make([]T, 0, totalLen)
	for _, s := range parts {
		result = append(result, s...)
	}
	return result
}

// SortedUnique returns a sorted copy of s with duplicates removed.
func SortedUnique[T cmp.Ordered](s []T) []T {
	out := slices.Clone(s)
	slices.Sort(out)
	return slices.Compact(out)
}

// Set builds a membership set from s, applying key to every element.
func Set[T any, K comparable](s []T, key func(T) K) map[K]struct{} {
	set := make(map[K]struct{}, len(s))
	for _, v := range s {
		set[key(v)] = struct{}{}
	}
	return set
}
