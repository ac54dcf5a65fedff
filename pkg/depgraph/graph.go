package depgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// Graph accumulates walk output in memory. It implements Emitter, so it can
// collect alongside (or instead of) a streaming writer, and backs the JSON
// export and the interactive explorer.
//
// Nodes keep first-visit order; edges keep traversal order, duplicates
// included. Graph is not safe for concurrent use, matching the strictly
// sequential walker.
type Graph struct {
	nodes []Node
	index map[string]int
	edges []Edge
	kids  map[string][]string // parent name -> distinct child names, first-seen order
}

// NewGraph creates an empty collection graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]int),
		kids:  make(map[string][]string),
	}
}

// AddNode records a node. Re-adding a name the walker already declared is a
// no-op, keeping the first visit's data.
func (g *Graph) AddNode(n Node) error {
	if _, ok := g.index[n.Name]; ok {
		return nil
	}
	g.index[n.Name] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return nil
}

// AddEdge records an edge. Duplicates are kept; the adjacency used by
// Children de-duplicates separately.
func (g *Graph) AddEdge(e Edge) error {
	g.edges = append(g.edges, e)
	if !slices.Contains(g.kids[e.From], e.To) {
		g.kids[e.From] = append(g.kids[e.From], e.To)
	}
	return nil
}

// Node returns the recorded node with the given name.
func (g *Graph) Node(name string) (Node, bool) {
	i, ok := g.index[name]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Nodes returns all nodes in first-visit order.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns all edges in traversal order, duplicates included.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of emitted edges, duplicates included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the distinct dependency names of a node in first-seen
// order.
func (g *Graph) Children(name string) []string {
	return slices.Clone(g.kids[name])
}

// jsonNode and jsonEdge pin the exported wire format independently of the
// in-memory types.
type jsonNode struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	File      string `json:"file"`
	Functions int    `json:"functions"`
	Group     int    `json:"group"`
	Color     string `json:"color"`
}

type jsonEdge struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Called    int    `json:"called"`
	SameGroup bool   `json:"same_group"`
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

// WriteJSON serializes the graph to w as an indented, stable JSON document:
// nodes in first-visit order, edges in traversal order.
func (g *Graph) WriteJSON(w io.Writer) error {
	doc := jsonGraph{
		Nodes: make([]jsonNode, 0, len(g.nodes)),
		Edges: make([]jsonEdge, 0, len(g.edges)),
	}
	for _, n := range g.nodes {
		doc.Nodes = append(doc.Nodes, jsonNode(n))
	}
	for _, e := range g.edges {
		doc.Edges = append(doc.Edges, jsonEdge(e))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// ExportJSON writes the graph as JSON to the file at path, overwriting any
// existing file.
func (g *Graph) ExportJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// MultiEmitter fans graph elements out to several emitters, stopping at the
// first error.
type MultiEmitter []Emitter

// AddNode forwards the node to every emitter.
func (m MultiEmitter) AddNode(n Node) error {
	for _, e := range m {
		if err := e.AddNode(n); err != nil {
			return err
		}
	}
	return nil
}

// AddEdge forwards the edge to every emitter.
func (m MultiEmitter) AddEdge(e Edge) error {
	for _, em := range m {
		if err := em.AddEdge(e); err != nil {
			return err
		}
	}
	return nil
}
