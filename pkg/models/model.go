package models

import (
	"fmt"

	"github.com/BeyondBelief96/rusterize/pkg/render"
)

// Model is a named collection of meshes loaded from a single file, with a
// world transform and an optional owned texture. Meshes keep their load
// order; a name map gives O(1) lookup.
type Model struct {
	name      string
	meshes    []*Mesh
	meshNames map[string]int
	Transform Transform
	texture   *render.Texture
}

// NewModel creates an empty model with the given name.
func NewModel(name string) *Model {
	return &Model{
		name:      name,
		meshNames: make(map[string]int),
		Transform: NewTransform(),
	}
}

// ModelFromOBJ loads a model from an OBJ file. All objects/groups become
// meshes of this model.
func ModelFromOBJ(name, path string) (*Model, error) {
	meshes, err := LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", name, err)
	}

	model := NewModel(name)
	for _, mesh := range meshes {
		model.AddMesh(mesh)
	}
	return model, nil
}

// Name returns the model name.
func (m *Model) Name() string {
	return m.name
}

// AddMesh appends a mesh and maps its name.
func (m *Model) AddMesh(mesh *Mesh) {
	m.meshNames[mesh.Name] = len(m.meshes)
	m.meshes = append(m.meshes, mesh)
}

// Mesh returns a mesh by name, or nil.
func (m *Model) Mesh(name string) *Mesh {
	if i, ok := m.meshNames[name]; ok {
		return m.meshes[i]
	}
	return nil
}

// MeshByIndex returns a mesh by load order, or nil.
func (m *Model) MeshByIndex(i int) *Mesh {
	if i < 0 || i >= len(m.meshes) {
		return nil
	}
	return m.meshes[i]
}

// Meshes returns all meshes in load order.
func (m *Model) Meshes() []*Mesh {
	return m.meshes
}

// MeshCount returns the number of meshes.
func (m *Model) MeshCount() int {
	return len(m.meshes)
}

// SetTexture gives the model its own texture.
func (m *Model) SetTexture(texture *render.Texture) {
	m.texture = texture
}

// ClearTexture removes the model's texture; the engine global texture
// applies again.
func (m *Model) ClearTexture() {
	m.texture = nil
}

// Texture returns the model's texture, or nil.
func (m *Model) Texture() *render.Texture {
	return m.texture
}
