// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package recommend

import (
	"reflect"
	"sort"
	"testing"
)

func TestNewItemSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []string
		want  ItemSet
	}{
		{"empty", nil, nil},
		{"sorted", []string{"Sneakers", "Backpack", "Hoodie"}, ItemSet{"Backpack", "Hoodie", "Sneakers"}},
		{"deduplicated", []string{"Hoodie", "Hoodie", "Backpack"}, ItemSet{"Backpack", "Hoodie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewItemSet(tt.items...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewItemSet(%v) = %v, want %v", tt.items, got, tt.want)
			}
		})
	}

	in := []string{"b", "a"}
	NewItemSet(in...)
	if in[0] != "b" {
		t.Error("NewItemSet modified its input")
	}
}

func TestItemSet_Operations(t *testing.T) {
	t.Parallel()

	abc := NewItemSet("A", "B", "C")
	ab := NewItemSet("A", "B")
	cd := NewItemSet("C", "D")
	var empty ItemSet

	if !abc.Contains("B") || abc.Contains("D") {
		t.Error("Contains")
	}
	if !ab.IsSubsetOf(abc) || abc.IsSubsetOf(ab) || cd.IsSubsetOf(abc) {
		t.Error("IsSubsetOf")
	}
	if !empty.IsSubsetOf(ab) {
		t.Error("empty set should be a subset of everything")
	}
	if !abc.Intersects(cd) || ab.Intersects(cd) || empty.Intersects(abc) {
		t.Error("Intersects")
	}
	if got := abc.Minus(ab); !reflect.DeepEqual(got, ItemSet{"C"}) {
		t.Errorf("Minus = %v", got)
	}
	if got := ab.String(); got != "{A, B}" {
		t.Errorf("String = %q", got)
	}
	if ab.Key() == NewItemSet("AB").Key() {
		t.Error("Key must separate items")
	}
}

func TestItemSet_Compare(t *testing.T) {
	t.Parallel()

	sets := []ItemSet{
		NewItemSet("B", "C"),
		NewItemSet("Z"),
		NewItemSet("A", "C"),
		NewItemSet("A"),
		NewItemSet("A", "B", "C"),
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Compare(sets[j]) < 0 })

	want := []ItemSet{
		{"A"}, {"Z"}, {"A", "C"}, {"B", "C"}, {"A", "B", "C"},
	}
	if !reflect.DeepEqual(sets, want) {
		t.Errorf("sorted = %v, want %v", sets, want)
	}
	if NewItemSet("A", "B").Compare(NewItemSet("B", "A")) != 0 {
		t.Error("equal sets should compare equal")
	}
}

func TestCompareRules(t *testing.T) {
	t.Parallel()

	rule := func(ante, cons string, conf, lift, sup float64) Rule {
		return Rule{
			Antecedent: NewItemSet(ante),
			Consequent: NewItemSet(cons),
			Confidence: conf,
			Lift:       lift,
			Support:    sup,
		}
	}

	rules := []Rule{
		rule("A", "B", 0.5, 2, 0.1),
		rule("B", "A", 0.9, 1, 0.1),
		rule("C", "A", 0.9, 1.5, 0.1),
		rule("D", "A", 0.9, 1.5, 0.3),
		rule("A", "C", 0.9, 1.5, 0.3),
	}
	sort.Slice(rules, func(i, j int) bool { return CompareRules(rules[i], rules[j]) < 0 })

	var got []string
	for _, r := range rules {
		got = append(got, r.Antecedent[0]+">"+r.Target())
	}
	want := []string{"A>C", "D>A", "C>A", "B>A", "A>B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRule_Target(t *testing.T) {
	t.Parallel()

	r := Rule{Consequent: NewItemSet("Sneakers", "Backpack")}
	if r.Target() != "Backpack" {
		t.Errorf("Target() = %q, want Backpack", r.Target())
	}
	if (Rule{}).Target() != "" {
		t.Error("empty consequent should have empty target")
	}
}
