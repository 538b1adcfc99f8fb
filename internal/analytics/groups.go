// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package analytics

// orderedGroups maps keys to accumulators and remembers first-seen key order,
// so results built from it are deterministic for a given input.
type orderedGroups[K comparable, V any] struct {
	keys  []K
	index map[K]*V
}

func newOrderedGroups[K comparable, V any]() *orderedGroups[K, V] {
	return &orderedGroups[K, V]{index: make(map[K]*V)}
}

// get returns the accumulator for key, creating a zero one on first use.
func (g *orderedGroups[K, V]) get(key K) *V {
	if acc, ok := g.index[key]; ok {
		return acc
	}
	acc := new(V)
	g.index[key] = acc
	g.keys = append(g.keys, key)
	return acc
}

func (g *orderedGroups[K, V]) len() int {
	return len(g.keys)
}

// each visits groups in first-seen order.
func (g *orderedGroups[K, V]) each(fn func(key K, acc *V)) {
	for _, k := range g.keys {
		fn(k, g.index[k])
	}
}
