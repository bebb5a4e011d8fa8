package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sceneforge/depsgraph/pkg/errors"
)

const validManifest = `
[scene]
name = "demo"

[[datablocks]]
name = "Cube"
kind = "object"
components = ["transform", "geometry"]
depends_on = ["CubeMesh"]

[[datablocks]]
name = "CubeMesh"
kind = "mesh"
components = ["geometry"]
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest([]byte(validManifest))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if m.Scene.Name != "demo" {
		t.Errorf("scene name = %q, want %q", m.Scene.Name, "demo")
	}
	if len(m.Datablocks) != 2 {
		t.Fatalf("got %d datablocks, want 2", len(m.Datablocks))
	}
	if got := m.Datablocks[0].DependsOn; len(got) != 1 || got[0] != "CubeMesh" {
		t.Errorf("depends_on = %v, want [CubeMesh]", got)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode errors.Code
	}{
		{
			name:     "invalid toml",
			input:    "[[datablocks\nname=",
			wantCode: errors.ErrCodeInvalidManifest,
		},
		{
			name:     "no datablocks",
			input:    "[scene]\nname = \"empty\"\n",
			wantCode: errors.ErrCodeInvalidManifest,
		},
		{
			name: "duplicate names",
			input: `
[[datablocks]]
name = "A"
[[datablocks]]
name = "A"
`,
			wantCode: errors.ErrCodeInvalidManifest,
		},
		{
			name: "unknown dependency",
			input: `
[[datablocks]]
name = "A"
depends_on = ["Missing"]
`,
			wantCode: errors.ErrCodeInvalidManifest,
		},
		{
			name: "bad uid",
			input: `
[[datablocks]]
name = "A"
uid = "not-a-uuid"
`,
			wantCode: errors.ErrCodeInvalidManifest,
		},
		{
			name: "empty name",
			input: `
[[datablocks]]
name = ""
`,
			wantCode: errors.ErrCodeInvalidManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("error code = %v, want %v", got, tt.wantCode)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(validManifest), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(m.Datablocks) != 2 {
		t.Errorf("got %d datablocks, want 2", len(m.Datablocks))
	}
}

func TestLoadManifestMissing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", got, errors.ErrCodeFileNotFound)
	}
}
