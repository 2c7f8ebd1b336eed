// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package recommend

import (
	"sort"
	"strings"
)

// keySeparator joins item names in ItemSet keys. It cannot appear in CSV
// product names read by the transactions package.
const keySeparator = "\x1f"

// ItemSet is a sorted set of distinct product names. The zero value is the
// empty set. Construct with NewItemSet; never mutate the backing slice.
type ItemSet []string

// NewItemSet sorts and de-duplicates items.
func NewItemSet(items ...string) ItemSet {
	if len(items) == 0 {
		return nil
	}
	cp := make([]string, len(items))
	copy(cp, items)
	sort.Strings(cp)

	out := cp[:1]
	for _, it := range cp[1:] {
		if it != out[len(out)-1] {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of items.
func (s ItemSet) Len() int { return len(s) }

// Contains reports whether item is in the set.
func (s ItemSet) Contains(item string) bool {
	i := sort.SearchStrings(s, item)
	return i < len(s) && s[i] == item
}

// IsSubsetOf reports whether every item of s is in other.
func (s ItemSet) IsSubsetOf(other ItemSet) bool {
	if len(s) > len(other) {
		return false
	}
	j := 0
	for _, it := range s {
		for j < len(other) && other[j] < it {
			j++
		}
		if j == len(other) || other[j] != it {
			return false
		}
		j++
	}
	return true
}

// Intersects reports whether s and other share at least one item.
func (s ItemSet) Intersects(other ItemSet) bool {
	i, j := 0, 0
	for i < len(s) && j < len(other) {
		switch {
		case s[i] == other[j]:
			return true
		case s[i] < other[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// Minus returns the items of s not in other.
func (s ItemSet) Minus(other ItemSet) ItemSet {
	var out ItemSet
	for _, it := range s {
		if !other.Contains(it) {
			out = append(out, it)
		}
	}
	return out
}

// Key returns a canonical string form usable as a map key and as a total
// order tie-breaker.
func (s ItemSet) Key() string {
	return strings.Join(s, keySeparator)
}

// String renders the set for logs and explanations.
func (s ItemSet) String() string {
	return "{" + strings.Join(s, ", ") + "}"
}

// Compare orders sets by size, then lexicographically by item.
func (s ItemSet) Compare(other ItemSet) int {
	if len(s) != len(other) {
		if len(s) < len(other) {
			return -1
		}
		return 1
	}
	for i := range s {
		if c := strings.Compare(s[i], other[i]); c != 0 {
			return c
		}
	}
	return 0
}
