// StyleHive - Retail Recommendation Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylehive

package algorithms

import (
	"context"
	"math/bits"
	"slices"
	"sort"

	"github.com/tomtom215/stylehive/internal/recommend"
)

// bitset is a fixed-size set of basket indices.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (uint(i) % 64)
}

func (b bitset) count() int {
	c := 0
	for _, w := range b {
		c += bits.OnesCount64(w)
	}
	return c
}

// and returns the intersection of b and o.
func (b bitset) and(o bitset) bitset {
	out := make(bitset, len(b))
	for i := range b {
		out[i] = b[i] & o[i]
	}
	return out
}

// basketEncoding is the one-hot presence encoding of a basket list. Each
// product column is stored vertically as the set of baskets containing it.
type basketEncoding struct {
	items   []string
	columns []bitset
	baskets int
}

// encodeBaskets builds the presence encoding. Columns follow ascending
// product name and repeated products in a basket count once.
func encodeBaskets(baskets [][]string) *basketEncoding {
	seen := make(map[string]struct{})
	for _, b := range baskets {
		for _, p := range b {
			seen[p] = struct{}{}
		}
	}
	items := make([]string, 0, len(seen))
	for p := range seen {
		items = append(items, p)
	}
	sort.Strings(items)

	index := make(map[string]int, len(items))
	columns := make([]bitset, len(items))
	for i, p := range items {
		index[p] = i
		columns[i] = newBitset(len(baskets))
	}
	for bi, b := range baskets {
		for _, p := range b {
			columns[index[p]].set(bi)
		}
	}

	return &basketEncoding{items: items, columns: columns, baskets: len(baskets)}
}

// candidate is an itemset under evaluation: item column indices in
// ascending order plus the baskets containing all of them.
type candidate struct {
	cols  []int
	cover bitset
}

// apriori mines every itemset whose support reaches minSupport, level by
// level. Candidates of size k are joined from frequent (k-1)-itemsets that
// share their first k-2 items and pruned unless every (k-1)-subset is
// frequent. maxLen <= 0 leaves the size unbounded.
func apriori(ctx context.Context, enc *basketEncoding, minSupport float64, maxLen int) ([]recommend.Itemset, error) {
	if enc.baskets == 0 {
		return nil, nil
	}
	n := float64(enc.baskets)
	frequent := func(c bitset) (float64, bool) {
		s := float64(c.count()) / n
		return s, s >= minSupport
	}

	var out []recommend.Itemset
	emit := func(cols []int, support float64) {
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = enc.items[c]
		}
		out = append(out, recommend.Itemset{Items: recommend.NewItemSet(names...), Support: support})
	}

	var level []candidate
	for i, col := range enc.columns {
		if s, ok := frequent(col); ok {
			level = append(level, candidate{cols: []int{i}, cover: col})
			emit([]int{i}, s)
		}
	}

	for k := 2; len(level) > 1 && (maxLen <= 0 || k <= maxLen); k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prev := make(map[string]struct{}, len(level))
		for _, c := range level {
			prev[colsKey(c.cols)] = struct{}{}
		}

		var next []candidate
		for i := 0; i < len(level); i++ {
			for j := i + 1; j < len(level); j++ {
				a, b := level[i].cols, level[j].cols
				if !slices.Equal(a[:k-2], b[:k-2]) {
					// level is sorted, so no later j shares a's prefix
					break
				}
				cols := make([]int, k)
				copy(cols, a)
				cols[k-1] = b[k-2]
				if !allSubsetsFrequent(cols, prev) {
					continue
				}
				cover := level[i].cover.and(enc.columns[cols[k-1]])
				if s, ok := frequent(cover); ok {
					next = append(next, candidate{cols: cols, cover: cover})
					emit(cols, s)
				}
			}
		}
		level = next
	}

	sort.SliceStable(out, func(i, j int) bool {
		return recommend.CompareItemsets(out[i], out[j]) < 0
	})
	return out, nil
}

// allSubsetsFrequent checks every (k-1)-subset obtained by dropping one
// item. The two join parents are frequent by construction.
func allSubsetsFrequent(cols []int, prev map[string]struct{}) bool {
	if len(cols) <= 2 {
		return true
	}
	sub := make([]int, 0, len(cols)-1)
	for drop := 0; drop < len(cols)-2; drop++ {
		sub = sub[:0]
		sub = append(sub, cols[:drop]...)
		sub = append(sub, cols[drop+1:]...)
		if _, ok := prev[colsKey(sub)]; !ok {
			return false
		}
	}
	return true
}

func colsKey(cols []int) string {
	b := make([]byte, 0, len(cols)*3)
	for _, c := range cols {
		for c >= 0x80 {
			b = append(b, byte(c)|0x80)
			c >>= 7
		}
		b = append(b, byte(c))
	}
	return string(b)
}

// associationRules derives every rule A => C with A and C disjoint,
// non-empty, and A ∪ C a frequent itemset, keeping those whose confidence
// reaches minConfidence. Rules are returned in recommend.CompareRules order.
func associationRules(ctx context.Context, itemsets []recommend.Itemset, minConfidence float64) ([]recommend.Rule, error) {
	support := make(map[string]float64, len(itemsets))
	for _, is := range itemsets {
		support[is.Items.Key()] = is.Support
	}

	var rules []recommend.Rule
	for _, is := range itemsets {
		size := is.Items.Len()
		if size < 2 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// every non-empty proper subset as antecedent
		for mask := 1; mask < (1<<size)-1; mask++ {
			var ante, cons []string
			for i, item := range is.Items {
				if mask&(1<<i) != 0 {
					ante = append(ante, item)
				} else {
					cons = append(cons, item)
				}
			}
			antecedent := recommend.ItemSet(ante)
			consequent := recommend.ItemSet(cons)

			// subsets of a frequent itemset are frequent
			supA := support[antecedent.Key()]
			supC := support[consequent.Key()]
			if supA == 0 || supC == 0 {
				continue
			}

			confidence := is.Support / supA
			if confidence < minConfidence {
				continue
			}
			rules = append(rules, recommend.Rule{
				Antecedent:        antecedent,
				Consequent:        consequent,
				Support:           is.Support,
				Confidence:        confidence,
				Lift:              confidence / supC,
				AntecedentSupport: supA,
				ConsequentSupport: supC,
				Leverage:          is.Support - supA*supC,
			})
		}
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return recommend.CompareRules(rules[i], rules[j]) < 0
	})
	return rules, nil
}
