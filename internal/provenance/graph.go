package provenance

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
)

// NodeKind distinguishes the ways an artifact can come into existence.
type NodeKind int

const (
	// NodeImport brings raw data into the system as an artifact.
	NodeImport NodeKind = iota
	// NodeAction runs a registered plugin action over prior artifacts.
	NodeAction
)

// InputKind distinguishes what a recorded argument was bound to.
type InputKind int

const (
	// InputArtifact references an artifact produced earlier in the DAG.
	InputArtifact InputKind = iota
	// InputMetadata references metadata loaded from a file.
	InputMetadata
	// InputLiteral is a plain recorded value.
	InputLiteral
)

// MetadataRef points at the metadata a recorded argument was bound to.
type MetadataRef struct {
	Name       string
	DumpedFile string
}

// Input is one recorded argument of an invocation, in recorded order.
type Input struct {
	Name       string
	Kind       InputKind
	ArtifactID uuid.UUID
	Metadata   MetadataRef
	Literal    cty.Value
}

// Output is one recorded output of an invocation: the declared name and the
// artifact it produced. Outputs the record did not capture are simply
// absent.
type Output struct {
	Name       string
	ArtifactID uuid.UUID
}

// Node is one invocation in the provenance DAG.
type Node struct {
	ID   string
	Kind NodeKind

	// Action invocation fields.
	PluginID string
	ActionID string
	Inputs   []Input
	Outputs  []Output

	// Import fields.
	SemanticType string
	Format       string
	FormatModule string

	// Deps are the invocations whose artifacts this one consumes.
	Deps []*Node
}

// Artifact is one recorded data artifact and its producing invocation.
type Artifact struct {
	ID           uuid.UUID
	Name         string
	SemanticType string
	Producer     *Node
	OutputName   string
}

// Graph is the provenance DAG. The node map is guarded for concurrent
// readers, though replay itself walks the graph sequentially.
type Graph struct {
	mutex     sync.RWMutex
	nodes     map[string]*Node
	artifacts map[uuid.UUID]*Artifact
}

func newGraph() *Graph {
	return &Graph{
		nodes:     make(map[string]*Node),
		artifacts: make(map[uuid.UUID]*Artifact),
	}
}

// Node returns the invocation with the given id, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	n, ok := g.nodes[id]
	return n, ok
}

// Artifact returns the artifact with the given id, if present.
func (g *Graph) Artifact(id uuid.UUID) (*Artifact, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	a, ok := g.artifacts[id]
	return a, ok
}

// Len reports the number of invocations in the graph.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// ParsedArtifactIDs returns the sorted, deduplicated identifiers of every
// artifact parsed into the graph.
func (g *Graph) ParsedArtifactIDs() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	ids := make([]string, 0, len(g.artifacts))
	for id := range g.artifacts {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return ids
}

// TopologicalOrder returns every invocation ordered so that producers
// precede consumers. Ties break lexically by node id, making the order, and
// therefore the rendered script, deterministic.
func (g *Graph) TopologicalOrder() ([]*Node, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	indegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))
	for id, n := range g.nodes {
		deps := make(map[string]struct{})
		for _, dep := range n.Deps {
			deps[dep.ID] = struct{}{}
		}
		indegree[id] = len(deps)
		for dep := range deps {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var ready []string
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]*Node, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, g.nodes[id])

		released := false
		for _, dependent := range dependents[id] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
				released = true
			}
		}
		if released {
			sort.Strings(ready)
		}
	}

	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("provenance graph is not acyclic: %d of %d invocations unreachable",
			len(g.nodes)-len(order), len(g.nodes))
	}
	return order, nil
}

// detectCycles checks for circular dependencies using DFS. It backs up the
// Kahn walk in TopologicalOrder with a named offender in the error.
func (g *Graph) detectCycles() error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(n *Node) error
	visit = func(n *Node) error {
		visiting[n.ID] = true
		for _, dep := range n.Deps {
			if visiting[dep.ID] {
				return fmt.Errorf("cycle detected involving invocation %q", dep.ID)
			}
			if !visited[dep.ID] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, n.ID)
		visited[n.ID] = true
		return nil
	}

	for _, n := range g.nodes {
		if !visited[n.ID] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}
