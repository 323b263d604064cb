// Package leet enumerates character-substitution ("leet speak") variants of a word.
package leet

import "unicode"

// Table maps a lowercase letter to its ordered substitution alternatives.
type Table map[rune][]rune

// DefaultTable returns the standard substitution table.
func DefaultTable() Table {
	return Table{
		'a': {'4', '@'},
		'e': {'3'},
		'i': {'1', '!'},
		'o': {'0'},
		's': {'5', '$'},
		't': {'7', '+'},
		'b': {'8', '6'},
		'g': {'9'},
		'l': {'1'},
		'z': {'2'},
	}
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for k, alts := range t {
		out[k] = append([]rune(nil), alts...)
	}
	return out
}

// alternatives returns the substitutions for r, keyed on its lowercase form.
func (t Table) alternatives(r rune) []rune {
	return t[unicode.ToLower(r)]
}

// Transform returns word followed by every variant reachable by substituting
// between 1 and budget characters. Variants are ordered by substitution count,
// then by position subset, then by alternative, with duplicates removed.
// A budget below 1 yields only the word itself. Callers are expected to keep
// budget small; the result grows combinatorially.
func (t Table) Transform(word string, budget int) []string {
	out := []string{word}
	if budget < 1 {
		return out
	}

	runes := []rune(word)
	var positions []int
	for i, r := range runes {
		if len(t.alternatives(r)) > 0 {
			positions = append(positions, i)
		}
	}
	if budget > len(positions) {
		budget = len(positions)
	}

	seen := map[string]struct{}{word: {}}
	buf := make([]rune, len(runes))
	for k := 1; k <= budget; k++ {
		combinations(len(positions), k, func(idx []int) {
			chosen := make([]int, k)
			for i, j := range idx {
				chosen[i] = positions[j]
			}
			t.product(runes, chosen, buf, func(v []rune) {
				s := string(v)
				if _, ok := seen[s]; ok {
					return
				}
				seen[s] = struct{}{}
				out = append(out, s)
			})
		})
	}
	return out
}

// product calls fn with every assignment of one alternative per chosen position.
func (t Table) product(runes []rune, chosen []int, buf []rune, fn func([]rune)) {
	copy(buf, runes)
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(chosen) {
			fn(buf)
			return
		}
		pos := chosen[depth]
		for _, alt := range t.alternatives(runes[pos]) {
			buf[pos] = alt
			walk(depth + 1)
		}
		buf[pos] = runes[pos]
	}
	walk(0)
}

// combinations calls fn with every k-subset of [0, n) in lexicographic order.
// The slice passed to fn is reused between calls.
func combinations(n, k int, fn func([]int)) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		fn(idx)
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
