// Package models provides 3D mesh and model representation plus the OBJ
// and glTF loaders for rusterize.
package models

import (
	"errors"
	"fmt"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

// Load failure kinds. Loaders wrap these with file context; match with
// errors.Is. No partial mesh is ever returned alongside an error.
var (
	// ErrNoModels means the file contained no usable meshes.
	ErrNoModels = errors.New("no models in file")
	// ErrNoVertices means a mesh had no vertex positions.
	ErrNoVertices = errors.New("mesh has no vertices")
	// ErrInvalidFaceIndices means a face referenced a vertex out of range
	// or the index count was not divisible by 3.
	ErrInvalidFaceIndices = errors.New("invalid face indices")
)

// Vertex holds all per-vertex mesh attributes.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle of 0-based indices into the mesh vertex array.
type Face struct {
	V [3]int
}

// Mesh is a named triangle mesh with its own local transform.
//
// Invariants, checked at load time: every face index < len(Vertices).
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Faces     []Face
	Transform Transform

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Transform: NewTransform(),
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Validate checks the mesh invariants: at least one vertex, and every face
// index in range.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("mesh %q: %w", m.Name, ErrNoVertices)
	}
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("mesh %q face %d index %d out of range: %w",
					m.Name, i, idx, ErrInvalidFaceIndices)
			}
		}
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// CalculateNormals assigns each face's normal to its three vertices
// (flat shading; the last face writing a shared vertex wins).
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()

		m.Vertices[f.V[0]].Normal = normal
		m.Vertices[f.V[1]].Normal = normal
		m.Vertices[f.V[2]].Normal = normal
	}
}

// CalculateSmoothNormals computes area-weighted averaged normals for
// smooth shading.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}

	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position

		// Unnormalized cross product weights by face area
		normal := v1.Sub(v0).Cross(v2.Sub(v0))

		m.Vertices[f.V[0]].Normal = m.Vertices[f.V[0]].Normal.Add(normal)
		m.Vertices[f.V[1]].Normal = m.Vertices[f.V[1]].Normal.Add(normal)
		m.Vertices[f.V[2]].Normal = m.Vertices[f.V[2]].Normal.Add(normal)
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]Vertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Transform: m.Transform,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// NewCubeMesh creates a unit cube (side 2, centered at the origin) with
// per-face UVs, wound for the engine's front-face convention.
func NewCubeMesh() *Mesh {
	mesh := NewMesh("cube")

	positions := [8]math3d.Vec3{
		{X: -1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: 1, Y: 1, Z: -1},
		{X: 1, Y: -1, Z: -1},
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: 1},
		{X: -1, Y: 1, Z: 1},
		{X: -1, Y: -1, Z: 1},
	}

	// Each face contributes four corners so UVs stay per-face
	quads := [6]struct {
		idx    [4]int // bottom-left, top-left, top-right, bottom-right
		normal math3d.Vec3
	}{
		{[4]int{0, 1, 2, 3}, math3d.V3(0, 0, -1)}, // front
		{[4]int{3, 2, 4, 5}, math3d.V3(1, 0, 0)},  // right
		{[4]int{5, 4, 6, 7}, math3d.V3(0, 0, 1)},  // back
		{[4]int{7, 6, 1, 0}, math3d.V3(-1, 0, 0)}, // left
		{[4]int{1, 6, 4, 2}, math3d.V3(0, 1, 0)},  // top
		{[4]int{7, 0, 3, 5}, math3d.V3(0, -1, 0)}, // bottom
	}
	uvs := [4]math3d.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}

	for _, q := range quads {
		base := len(mesh.Vertices)
		for corner := range 4 {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: positions[q.idx[corner]],
				Normal:   q.normal,
				UV:       uvs[corner],
			})
		}
		mesh.Faces = append(mesh.Faces,
			Face{V: [3]int{base, base + 1, base + 2}},
			Face{V: [3]int{base, base + 2, base + 3}},
		)
	}

	mesh.CalculateBounds()
	return mesh
}
