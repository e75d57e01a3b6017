// Package domain contains the core domain model for native build orchestration:
// target platforms, build units and the task dependency graph.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// NodeKind classifies a graph node.
type NodeKind string

const (
	// NodeUnit executes a build unit.
	NodeUnit NodeKind = "unit"
	// NodeAggregate is a barrier with no work of its own; it completes once
	// all of its dependencies have completed.
	NodeAggregate NodeKind = "aggregate"
	// NodeGuard is the singleton toolchain verification gate.
	NodeGuard NodeKind = "guard"
)

// Node is a vertex in the build graph.
// For NodeUnit the Unit field is set; for NodeAggregate the Platform field
// names the target platform and Staging marks the prebuild variant.
type Node struct {
	Name     InternedString
	Kind     NodeKind
	Unit     *BuildUnit
	Platform string
	Staging  bool

	deps   []InternedString
	depSet map[InternedString]struct{}
}

// Dependencies returns the node's upstream dependencies in insertion order.
func (n *Node) Dependencies() []InternedString {
	return n.deps
}

// Graph represents the dependency graph of build nodes.
// All mutation happens during the configuration phase; Freeze closes the graph
// before the executor starts, so no run-time mutation race exists.
type Graph struct {
	nodes map[InternedString]*Node
	order []InternedString

	frozen         bool
	executionOrder []InternedString
	dependents     map[InternedString][]InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[InternedString]*Node),
	}
}

// AddNode adds a node to the graph.
// It returns an error if the graph is frozen or the name is already taken.
func (g *Graph) AddNode(n *Node) error {
	if g.frozen {
		return zerr.With(zerr.Wrap(ErrGraphFrozen, "cannot add node"), "node", n.Name.String())
	}
	if _, exists := g.nodes[n.Name]; exists {
		return zerr.With(zerr.Wrap(ErrNodeAlreadyExists, "cannot add node"), "node", n.Name.String())
	}
	if n.depSet == nil {
		n.depSet = make(map[InternedString]struct{})
	}
	g.nodes[n.Name] = n
	g.order = append(g.order, n.Name)
	return nil
}

// AddEdge records that from depends on to. Both nodes must already exist.
// Adding the same edge twice is a no-op, so edge wiring stays idempotent.
func (g *Graph) AddEdge(from, to InternedString) error {
	if g.frozen {
		return zerr.With(zerr.Wrap(ErrGraphFrozen, "cannot add edge"), "node", from.String())
	}
	src, ok := g.nodes[from]
	if !ok {
		return zerr.With(zerr.Wrap(ErrNodeNotFound, "cannot add edge"), "node", from.String())
	}
	if _, ok := g.nodes[to]; !ok {
		return zerr.With(zerr.Wrap(ErrNodeNotFound, "cannot add edge"), "node", to.String())
	}
	if _, dup := src.depSet[to]; dup {
		return nil
	}
	src.depSet[to] = struct{}{}
	src.deps = append(src.deps, to)
	return nil
}

// HasEdge reports whether from depends on to.
func (g *Graph) HasEdge(from, to InternedString) bool {
	src, ok := g.nodes[from]
	if !ok {
		return false
	}
	_, ok = src.depSet[to]
	return ok
}

// Node returns the node registered under name.
func (g *Graph) Node(name InternedString) (*Node, error) {
	n, ok := g.nodes[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrNodeNotFound, "node lookup failed"), "node", name.String())
	}
	return n, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Frozen reports whether the graph has been finalized.
func (g *Graph) Frozen() bool {
	return g.frozen
}

// Freeze closes the graph for mutation. It must be called exactly once, after
// all units and aggregates are declared and before execution begins.
func (g *Graph) Freeze() error {
	if g.frozen {
		return ErrGraphFrozen
	}
	g.frozen = true
	return nil
}

// Validate checks for cycles using a depth-first topological sort and
// populates the execution order and reverse-dependency index.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.nodes))
	g.dependents = make(map[InternedString][]InternedString, len(g.nodes))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		node, exists := g.nodes[u]
		if !exists {
			return zerr.With(zerr.Wrap(ErrMissingDependency, "graph validation failed"), "dependency", u.String())
		}

		for _, dep := range node.deps {
			g.dependents[dep] = append(g.dependents[dep], u)
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	// Iterate in insertion order so disconnected components are visited
	// deterministically.
	for _, name := range g.order {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	cyclePath := ""
	startIdx := -1
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].String() + " -> "
	}
	cyclePath += dep.String()
	return zerr.With(zerr.Wrap(ErrCycleDetected, "graph validation failed"), "cycle", cyclePath)
}

// Walk returns an iterator that yields nodes in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.nodes[name]) {
				return
			}
		}
	}
}

// Units returns an iterator over all build units in the graph, in declaration
// order. Available before Validate.
func (g *Graph) Units() iter.Seq[*BuildUnit] {
	return func(yield func(*BuildUnit) bool) {
		for _, name := range g.order {
			n := g.nodes[name]
			if n.Kind != NodeUnit {
				continue
			}
			if !yield(n.Unit) {
				return
			}
		}
	}
}

// Dependents returns the nodes that depend on name.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}
