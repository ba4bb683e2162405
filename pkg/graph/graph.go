package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rpgmap/pkg/catalog"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// wireGraph is the JSON form of a Graph. Nodes, edges and neighbors are
// derived data; records are the source of truth when reading a graph back.
type wireGraph struct {
	Nodes     []Node              `json:"nodes"`
	Edges     []Edge              `json:"edges"`
	Neighbors map[string][]string `json:"neighbors"`
	Records   []catalog.Record    `json:"records"`
}

// MarshalGraph converts a Graph to indented JSON bytes.
// Output is deterministic for a given graph.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes a Graph as JSON to an io.Writer.
// Use MarshalGraph for in-memory serialization or WriteGraphFile for files.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraphFile reads a graph JSON file written by [WriteGraphFile].
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a graph JSON document. The graph is rebuilt from the
// embedded records so every invariant of [Build] holds for the result.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func toWire(g *Graph) wireGraph {
	out := wireGraph{
		Nodes:     g.Nodes(),
		Edges:     g.Edges(),
		Neighbors: make(map[string][]string, len(g.nodes)),
		Records:   g.Records(),
	}
	for _, n := range g.nodes {
		out.Neighbors[n.ID] = g.Neighbors(n.ID)
	}
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	if out.Records == nil {
		out.Records = []catalog.Record{}
	}
	return out
}

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toWire(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var data wireGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return Build(data.Records)
}
