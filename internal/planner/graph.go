package planner

import "github.com/alexanderramin/termplan/internal/domain"

// Node wraps one plannable course with its reverse edges and placement state
// for a single planning run.
type Node struct {
	Course           *domain.Course
	Prerequisites    []string
	Corequisites     []string
	Dependents       []string
	Placed           bool
	UnassignedReason string
	OriginalOrder    int
}

// ID returns the wrapped course identifier.
func (n *Node) ID() string {
	return n.Course.ID
}

// Graph is the node-per-course dependency graph. It is rebuilt for every run.
type Graph struct {
	nodes map[string]*Node
	order []string
}

// BuildGraph creates one node per plannable course and links dependents.
// Prerequisites that are not nodes themselves get no reverse edge.
func BuildGraph(courses []domain.Course) *Graph {
	g := &Graph{nodes: make(map[string]*Node, len(courses))}
	for i := range courses {
		c := &courses[i]
		if !c.Plannable() {
			continue
		}
		if _, dup := g.nodes[c.ID]; dup {
			continue
		}
		g.nodes[c.ID] = &Node{
			Course:        c,
			Prerequisites: append([]string(nil), c.Prerequisites...),
			Corequisites:  append([]string(nil), c.Corequisites...),
			OriginalOrder: c.OriginalOrder,
		}
		g.order = append(g.order, c.ID)
	}

	for _, id := range g.order {
		n := g.nodes[id]
		for _, p := range n.Prerequisites {
			if pn, ok := g.nodes[p]; ok {
				pn.Dependents = append(pn.Dependents, id)
			}
		}
	}
	return g
}

// Node looks up a node by course ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Has reports whether the course is a node in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the node count.
func (g *Graph) Len() int {
	return len(g.order)
}

// Nodes returns every node in input order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Unplaced returns the nodes not yet placed, in input order.
func (g *Graph) Unplaced() []*Node {
	var out []*Node
	for _, id := range g.order {
		if n := g.nodes[id]; !n.Placed {
			out = append(out, n)
		}
	}
	return out
}

// PrerequisitesMet reports whether every prerequisite is in completed or is
// not a graph node at all.
func (g *Graph) PrerequisitesMet(n *Node, completed map[string]bool) bool {
	for _, p := range n.Prerequisites {
		if !completed[p] && g.Has(p) {
			return false
		}
	}
	return true
}

// UnmetPrerequisites counts prerequisites that are nodes and not yet placed.
func (g *Graph) UnmetPrerequisites(n *Node) int {
	count := 0
	for _, p := range n.Prerequisites {
		if pn, ok := g.nodes[p]; ok && !pn.Placed {
			count++
		}
	}
	return count
}
