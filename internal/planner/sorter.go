package planner

import "sort"

// SortCandidates orders available nodes for greedy placement:
// 1. Original order: ascending
// 2. Dependents: more first
// 3. Difficulty: easier first
// 4. Course ID: lexical ascending
func SortCandidates(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]

		if a.OriginalOrder != b.OriginalOrder {
			return a.OriginalOrder < b.OriginalOrder
		}
		if len(a.Dependents) != len(b.Dependents) {
			return len(a.Dependents) > len(b.Dependents)
		}
		if a.Course.Load() != b.Course.Load() {
			return a.Course.Load() < b.Course.Load()
		}
		return a.ID() < b.ID()
	})
}

// SortFallback orders unplaced nodes for the fallback and cleanup phases:
// 1. Original order: ascending
// 2. Unmet prerequisites (nodes not yet placed): fewer first
// 3. Difficulty: easier first
// 4. Course ID: lexical ascending
func SortFallback(g *Graph, nodes []*Node) {
	unmet := make(map[string]int, len(nodes))
	for _, n := range nodes {
		unmet[n.ID()] = g.UnmetPrerequisites(n)
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]

		if a.OriginalOrder != b.OriginalOrder {
			return a.OriginalOrder < b.OriginalOrder
		}
		if unmet[a.ID()] != unmet[b.ID()] {
			return unmet[a.ID()] < unmet[b.ID()]
		}
		if a.Course.Load() != b.Course.Load() {
			return a.Course.Load() < b.Course.Load()
		}
		return a.ID() < b.ID()
	})
}
