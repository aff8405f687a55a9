package utils

import (
	"sort"
	"strings"
)

// NewSet builds a string set from the given values.
func NewSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Union merges any number of string sets into a new set.
func Union(sets ...map[string]struct{}) map[string]struct{} {
	union := make(map[string]struct{})
	for _, set := range sets {
		for v := range set {
			union[v] = struct{}{}
		}
	}
	return union
}

// SortedSet returns the members of a string set as a sorted slice.
// An empty or nil set yields an empty (non-nil) slice.
func SortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// JoinSet renders a string set as its sorted members joined by sep.
func JoinSet(set map[string]struct{}, sep string) string {
	return strings.Join(SortedSet(set), sep)
}
