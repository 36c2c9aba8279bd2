// internal/engine/resource.go
package engine

import (
	"fmt"
	"path"
	"strings"
)

// ResourceManager tracks loaded model files. Meshes are referenced by name
// only; geometry belongs to the renderer.
type ResourceManager struct {
	models map[string]string // model name -> source file
}

func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		models: make(map[string]string),
	}
}

// LoadResourceFile registers the models contained in the file. The model
// name is the file's base name without extension, matching how scenes refer
// to instantiable models.
func (m *ResourceManager) LoadResourceFile(file string) error {
	base := path.Base(file)
	ext := path.Ext(base)
	name := strings.TrimSuffix(base, ext)
	if name == "" || name == "." {
		return fmt.Errorf("resource file %q has no model name", file)
	}
	if ext != ".dae" && ext != ".obj" {
		return fmt.Errorf("resource file %q: unsupported format %q", file, ext)
	}
	m.models[name] = file
	return nil
}

// Known reports whether a model with the given name has been loaded.
func (m *ResourceManager) Known(name string) bool {
	_, ok := m.models[name]
	return ok
}
