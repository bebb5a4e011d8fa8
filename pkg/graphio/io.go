package graphio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sceneforge/depsgraph/pkg/deg"
)

// Marshal converts a graph to indented snapshot JSON.
func Marshal(g *deg.Graph, scene string) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(g, scene, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes snapshot JSON bytes to a Snapshot.
func Unmarshal(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode: %w", err)
	}
	return snap, nil
}

// WriteFile writes a graph snapshot to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(g *deg.Graph, scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(g, scene, f)
}

// Write writes a graph snapshot as JSON to an io.Writer.
func Write(g *deg.Graph, scene string, w io.Writer) error {
	return writeTo(g, scene, w)
}

// ReadFile reads a snapshot JSON file and reconstructs the graph.
func ReadFile(path string) (*deg.Graph, Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Snapshot{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Read decodes a snapshot from an io.Reader and reconstructs the graph.
func Read(r io.Reader) (*deg.Graph, Snapshot, error) {
	return readFrom(r)
}

func writeTo(g *deg.Graph, scene string, w io.Writer) error {
	snap := FromGraph(g, scene)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*deg.Graph, Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, Snapshot{}, fmt.Errorf("decode: %w", err)
	}
	g, err := ToGraph(snap)
	if err != nil {
		return nil, Snapshot{}, err
	}
	return g, snap, nil
}
