package store

import (
	"context"
	"testing"

	"github.com/sceneforge/depsgraph/pkg/errors"
	"github.com/sceneforge/depsgraph/pkg/graphio"
)

func testSnapshot(scene string) graphio.Snapshot {
	return graphio.Snapshot{
		Scene: scene,
		Nodes: []graphio.Node{{
			Key:        "4f3b2a60-9f6e-4a0d-8c2e-1d2f3a4b5c6d",
			Type:       graphio.TypeID,
			Name:       "Cube",
			Identities: []graphio.Identity{{UID: "4f3b2a60-9f6e-4a0d-8c2e-1d2f3a4b5c6d", Name: "Cube"}},
		}},
	}
}

func TestMemoryStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	if err := s.Save(ctx, "scene-a", testSnapshot("a")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entry, err := s.Load(ctx, "scene-a")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if entry.Snapshot.Scene != "a" {
		t.Errorf("scene = %q, want %q", entry.Snapshot.Scene, "a")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestMemoryStoreReplace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Save(ctx, "scene", testSnapshot("v1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "scene", testSnapshot("v2")); err != nil {
		t.Fatal(err)
	}

	entry, err := s.Load(ctx, "scene")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Snapshot.Scene != "v2" {
		t.Errorf("scene = %q, want replaced snapshot v2", entry.Snapshot.Scene)
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx, "missing")
	if !errors.Is(err, errors.ErrCodeSnapshotNotFound) {
		t.Errorf("load error = %v, want snapshot-not-found", err)
	}

	if err := s.Delete(ctx, "missing"); !errors.Is(err, errors.ErrCodeSnapshotNotFound) {
		t.Errorf("delete error = %v, want snapshot-not-found", err)
	}
}

func TestMemoryStoreEmptyName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.Save(ctx, "", testSnapshot("x"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("save error = %v, want invalid-input", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Save(ctx, "scene", testSnapshot("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "scene"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := s.Load(ctx, "scene"); err == nil {
		t.Error("expected load to fail after delete")
	}
}
