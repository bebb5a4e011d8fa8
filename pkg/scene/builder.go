package scene

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sceneforge/depsgraph/pkg/deg"
	"github.com/sceneforge/depsgraph/pkg/errors"
	"github.com/sceneforge/depsgraph/pkg/observability"
)

// Build constructs a dependency graph from a manifest. Each datablock
// becomes an identity node, each component a data node attached to it,
// and each depends_on entry a relation from the dependency to the
// dependent.
func Build(ctx context.Context, m *Manifest) (*deg.Graph, error) {
	start := time.Now()
	observability.Graph().OnBuildStart(ctx, m.Scene.Name)

	g, err := build(m)

	nodes, rels := 0, 0
	if g != nil {
		nodes = g.NodeCount()
		rels = len(g.Relations())
	}
	observability.Graph().OnBuildComplete(ctx, m.Scene.Name, nodes, rels, time.Since(start), err)
	return g, err
}

func build(m *Manifest) (*deg.Graph, error) {
	g := deg.New()
	blocks := make(map[string]deg.Node, len(m.Datablocks))

	for _, db := range m.Datablocks {
		node, err := deg.NewNode(deg.NodeTypeOuterID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to create node")
		}
		node.SetName(db.Name)

		id := deg.ID{Name: db.Name}
		if db.UID != "" {
			// Validated during manifest parsing.
			id.UID = uuid.MustParse(db.UID)
		} else {
			id.UID = uuid.New()
		}

		if err := g.AddNode(node, id); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "failed to add datablock %s", db.Name)
		}
		blocks[db.Name] = node

		for _, comp := range db.Components {
			data, err := deg.NewNode(deg.NodeTypeData)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to create data node")
			}
			data.SetName(comp)
			if err := g.AddNode(data, id); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "failed to attach component %s", comp)
			}
		}
	}

	for _, db := range m.Datablocks {
		for _, dep := range db.DependsOn {
			// Relation points from the dependency to the dependent, so
			// that walking outlinks follows evaluation order.
			if _, err := g.AddRelation(blocks[dep], blocks[db.Name]); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "failed to relate %s -> %s", dep, db.Name)
			}
		}
	}

	return g, nil
}

// BuildFromFile loads a manifest and builds its graph in one step.
func BuildFromFile(ctx context.Context, path string) (*deg.Graph, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return Build(ctx, m)
}
