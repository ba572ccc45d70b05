// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package cache

import (
	"sort"
	"strings"
)

// Automaton implements Aho-Corasick multi-pattern substring matching over
// lowercased text. Each pattern carries a value of type T, and the order in
// which patterns are added is their priority (lower index wins).
//
// An Automaton is built once and is read-only afterwards, so a built
// automaton is safe for concurrent use without locking.
//
// Example:
//
//	ac := NewAutomaton[int]()
//	ac.Add("hoodie", 3)
//	ac.Add("oversized", 2)
//	ac.Build()
//
//	for _, idx := range ac.Distinct("Oversized hoodie in jersey") {
//	    total += ac.Value(idx)
//	}
type Automaton[T any] struct {
	root     *acNode
	patterns []string
	values   []T
	built    bool
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	output   []int // pattern indices ending here, including those reached via failure links
}

// Hit is a single pattern occurrence.
type Hit[T any] struct {
	Index    int // pattern index, i.e. add order
	Pattern  string
	Value    T
	Position int // byte offset of the match start in the lowercased text
}

// NewAutomaton creates an empty automaton.
func NewAutomaton[T any]() *Automaton[T] {
	return &Automaton[T]{root: newACNode()}
}

// NewAutomatonFromPairs builds an automaton from ordered (pattern, value) pairs.
func NewAutomatonFromPairs[T any](patterns []string, values []T) *Automaton[T] {
	ac := NewAutomaton[T]()
	for i, p := range patterns {
		ac.Add(p, values[i])
	}
	ac.Build()
	return ac
}

// NewKeywordSet builds an automaton whose patterns all carry the zero value.
// Use it when only presence matters.
func NewKeywordSet(keywords ...string) *Automaton[struct{}] {
	ac := NewAutomaton[struct{}]()
	for _, k := range keywords {
		ac.Add(k, struct{}{})
	}
	ac.Build()
	return ac
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

// Add registers a pattern. Empty patterns are ignored. Adding after Build
// requires another Build call.
func (ac *Automaton[T]) Add(pattern string, value T) {
	if pattern == "" {
		return
	}
	ac.patterns = append(ac.patterns, strings.ToLower(pattern))
	ac.values = append(ac.values, value)
	ac.built = false
}

// Build constructs the trie and failure links.
func (ac *Automaton[T]) Build() {
	if ac.built {
		return
	}

	ac.root = newACNode()
	for i, p := range ac.patterns {
		node := ac.root
		for _, ch := range p {
			next, ok := node.children[ch]
			if !ok {
				next = newACNode()
				node.children[ch] = next
			}
			node = next
		}
		node.output = append(node.output, i)
	}

	// BFS over the trie; children of root fail to root.
	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = ac.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}

	ac.built = true
}

// Len returns the number of registered patterns.
func (ac *Automaton[T]) Len() int {
	return len(ac.patterns)
}

// Value returns the value attached to pattern index i.
func (ac *Automaton[T]) Value(i int) T {
	return ac.values[i]
}

// Pattern returns the lowercased pattern at index i.
func (ac *Automaton[T]) Pattern(i int) string {
	return ac.patterns[i]
}

// scan walks text and calls fn for every pattern occurrence. Returning false
// from fn stops the scan.
func (ac *Automaton[T]) scan(text string, fn func(idx, end int) bool) {
	if !ac.built || len(ac.patterns) == 0 {
		return
	}

	node := ac.root
	for i, ch := range strings.ToLower(text) {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = ac.root
			continue
		}
		node = node.children[ch]

		end := i + len(string(ch))
		for _, idx := range node.output {
			if !fn(idx, end) {
				return
			}
		}
	}
}

// Search returns every pattern occurrence in text, in text order.
func (ac *Automaton[T]) Search(text string) []Hit[T] {
	var hits []Hit[T]
	ac.scan(text, func(idx, end int) bool {
		hits = append(hits, Hit[T]{
			Index:    idx,
			Pattern:  ac.patterns[idx],
			Value:    ac.values[idx],
			Position: end - len(ac.patterns[idx]),
		})
		return true
	})
	return hits
}

// Contains reports whether any pattern occurs in text.
func (ac *Automaton[T]) Contains(text string) bool {
	found := false
	ac.scan(text, func(int, int) bool {
		found = true
		return false
	})
	return found
}

// Distinct returns the indices of patterns that occur at least once in text,
// in ascending index order. This is the "keyword in text" test applied to
// every pattern at once.
func (ac *Automaton[T]) Distinct(text string) []int {
	seen := make(map[int]struct{})
	ac.scan(text, func(idx, _ int) bool {
		seen[idx] = struct{}{}
		return true
	})
	if len(seen) == 0 {
		return nil
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// FirstByPriority returns the value of the lowest-index pattern that occurs
// anywhere in text.
func (ac *Automaton[T]) FirstByPriority(text string) (T, bool) {
	best := -1
	ac.scan(text, func(idx, _ int) bool {
		if best < 0 || idx < best {
			best = idx
		}
		return best != 0
	})
	if best < 0 {
		var zero T
		return zero, false
	}
	return ac.values[best], true
}
