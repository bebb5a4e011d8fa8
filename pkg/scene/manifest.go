package scene

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/sceneforge/depsgraph/pkg/errors"
)

// Manifest describes a scene as a set of datablocks with dependencies.
type Manifest struct {
	Scene      SceneInfo   `toml:"scene"`
	Datablocks []Datablock `toml:"datablocks"`
}

// SceneInfo holds scene-level metadata.
type SceneInfo struct {
	Name string `toml:"name"`
}

// Datablock describes one outer node of the scene graph.
type Datablock struct {
	// Name is the human-readable label, unique within the manifest.
	Name string `toml:"name"`
	// Kind is a free-form classifier (object, mesh, material, ...).
	Kind string `toml:"kind"`
	// UID is an optional stable identity. When empty, a fresh one is
	// generated at build time.
	UID string `toml:"uid"`
	// Components are the inner data nodes attached to this datablock.
	Components []string `toml:"components"`
	// DependsOn names the datablocks this one depends on.
	DependsOn []string `toml:"depends_on"`
}

// LoadManifest reads and validates a scene manifest from a TOML file.
func LoadManifest(path string) (*Manifest, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "manifest not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to read manifest")
	}

	return ParseManifest(data)
}

// ParseManifest parses and validates a scene manifest from TOML bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "failed to parse manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural problems: empty or
// duplicate datablock names, invalid UIDs, and dangling depends_on
// references.
func (m *Manifest) Validate() error {
	if len(m.Datablocks) == 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "manifest has no datablocks")
	}

	seen := make(map[string]bool, len(m.Datablocks))
	for _, db := range m.Datablocks {
		if err := errors.ValidateBlockName(db.Name); err != nil {
			return err
		}
		if seen[db.Name] {
			return errors.New(errors.ErrCodeInvalidManifest, "duplicate datablock name: %s", db.Name)
		}
		seen[db.Name] = true

		if db.UID != "" {
			if _, err := uuid.Parse(db.UID); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid uid for datablock %s", db.Name)
			}
		}
		for _, comp := range db.Components {
			if err := errors.ValidateBlockName(comp); err != nil {
				return err
			}
		}
	}

	for _, db := range m.Datablocks {
		for _, dep := range db.DependsOn {
			if !seen[dep] {
				return errors.New(errors.ErrCodeInvalidManifest, "datablock %s depends on unknown datablock: %s", db.Name, dep)
			}
		}
	}

	return nil
}
