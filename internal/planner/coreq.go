package planner

import "sort"

// CoreqIndex answers corequisite-group queries over a graph. It follows the
// forward corequisite lists and a precomputed reverse index, so asymmetric
// data still yields the full closure.
type CoreqIndex struct {
	graph   *Graph
	reverse map[string][]string
}

// NewCoreqIndex precomputes reverse corequisite edges for g.
func NewCoreqIndex(g *Graph) *CoreqIndex {
	reverse := make(map[string][]string)
	for _, n := range g.Nodes() {
		for _, q := range n.Corequisites {
			reverse[q] = append(reverse[q], n.ID())
		}
	}
	return &CoreqIndex{graph: g, reverse: reverse}
}

// Group returns the transitive corequisite closure containing id, ordered by
// original order then ID. Only graph nodes are members; a course with no
// corequisites forms a group of one.
func (x *CoreqIndex) Group(id string) []string {
	if !x.graph.Has(id) {
		return []string{id}
	}

	seen := map[string]bool{id: true}
	queue := []string{id}
	group := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		n, _ := x.graph.Node(cur)
		neighbors := append(append([]string(nil), n.Corequisites...), x.reverse[cur]...)
		for _, next := range neighbors {
			if seen[next] || !x.graph.Has(next) {
				continue
			}
			seen[next] = true
			group = append(group, next)
			queue = append(queue, next)
		}
	}

	sort.SliceStable(group, func(i, j int) bool {
		a, _ := x.graph.Node(group[i])
		b, _ := x.graph.Node(group[j])
		if a.OriginalOrder != b.OriginalOrder {
			return a.OriginalOrder < b.OriginalOrder
		}
		return group[i] < group[j]
	})
	return group
}
