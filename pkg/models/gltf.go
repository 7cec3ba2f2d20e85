package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

// GLTF/GLB loading. Each glTF mesh becomes one engine mesh. Source data is
// normalized at load time: V coordinates flip from glTF's top-left origin
// to the engine's bottom-left convention, and CCW source winding swaps to
// the engine's front-face order.

// GLTFLoader loads glTF and GLB files.
type GLTFLoader struct {
	// GenerateNormals computes smooth normals when the file has none.
	GenerateNormals bool
}

// NewGLTFLoader creates a loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{GenerateNormals: true}
}

// LoadGLB loads all meshes of a glTF/GLB file with the default options.
func LoadGLB(path string) ([]*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load parses a glTF or GLB file into meshes. Meshes without triangle
// primitives are skipped; zero usable meshes is ErrNoModels.
func (l *GLTFLoader) Load(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %q: %w", path, err)
	}

	var meshes []*Mesh
	for i, gm := range doc.Meshes {
		name := gm.Name
		if name == "" {
			name = fmt.Sprintf("mesh_%d", i)
		}
		mesh, err := l.convertMesh(doc, gm, name)
		if err != nil {
			return nil, fmt.Errorf("gltf %q mesh %q: %w", path, name, err)
		}
		if mesh.TriangleCount() == 0 {
			continue
		}
		if err := mesh.Validate(); err != nil {
			return nil, fmt.Errorf("gltf %q: %w", path, err)
		}
		meshes = append(meshes, mesh)
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("gltf %q: %w", path, ErrNoModels)
	}
	return meshes, nil
}

// convertMesh extracts the triangle primitives of one glTF mesh.
func (l *GLTFLoader) convertMesh(doc *gltf.Document, gm *gltf.Mesh, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	hasNormals := false

	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Lines, points, strips and fans are not rasterizable here
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = readVec3Accessor(doc, normIdx); err != nil {
				return nil, fmt.Errorf("read normals: %w", err)
			}
			hasNormals = true
		}

		var texcoords []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if texcoords, err = readVec2Accessor(doc, uvIdx); err != nil {
				return nil, fmt.Errorf("read texcoords: %w", err)
			}
		}

		base := len(mesh.Vertices)
		for i := range positions {
			v := Vertex{Position: positions[i]}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(texcoords) {
				// glTF uses a top-left V origin; flip to bottom-left
				v.UV = math3d.V2(texcoords[i].X, 1-texcoords[i].Y)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		indices, err := primitiveIndices(doc, prim, len(positions))
		if err != nil {
			return nil, err
		}
		if len(indices)%3 != 0 {
			return nil, fmt.Errorf("index count %d not divisible by 3: %w", len(indices), ErrInvalidFaceIndices)
		}
		// glTF fronts are CCW; swap to the engine's winding
		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{V: [3]int{
				base + indices[i],
				base + indices[i+2],
				base + indices[i+1],
			}})
		}
	}

	if l.GenerateNormals && !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh, nil
}

// primitiveIndices returns the primitive's index list, or a sequential one
// when the primitive is non-indexed.
func primitiveIndices(doc *gltf.Document, prim *gltf.Primitive, vertexCount int) ([]int, error) {
	if prim.Indices == nil {
		seq := make([]int, vertexCount)
		for i := range seq {
			seq[i] = i
		}
		return seq, nil
	}
	return readIndexAccessor(doc, *prim.Indices)
}

// readVec3Accessor reads float32 VEC3 data from an accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}
	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, accessor.Count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V3(
			float64(float32At(data, off)),
			float64(float32At(data, off+4)),
			float64(float32At(data, off+8)),
		)
	}
	return out, nil
}

// readVec2Accessor reads float32 VEC2 data from an accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC2, got %v/%v", accessor.Type, accessor.ComponentType)
	}
	data, stride, err := accessorBytes(doc, accessor, 8)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec2, accessor.Count)
	for i := range out {
		off := i * stride
		out[i] = math3d.V2(
			float64(float32At(data, off)),
			float64(float32At(data, off+4)),
		)
	}
	return out, nil
}

// readIndexAccessor reads scalar index data of any of the three component
// widths.
func readIndexAccessor(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component type %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	out := make([]int, accessor.Count)
	for i := range out {
		off := i * stride
		switch size {
		case 1:
			out[i] = int(data[off])
		case 2:
			out[i] = int(uint16(data[off]) | uint16(data[off+1])<<8)
		default:
			out[i] = int(uint32(data[off]) | uint32(data[off+1])<<8 |
				uint32(data[off+2])<<16 | uint32(data[off+3])<<24)
		}
	}
	return out, nil
}

// accessorBytes resolves an accessor's backing bytes and element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elementSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elementSize
	}
	start := view.ByteOffset + accessor.ByteOffset
	end := start + (accessor.Count-1)*stride + elementSize
	if end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor range exceeds buffer length")
	}
	return buffer.Data[start:end], stride, nil
}

// float32At reads a little-endian float32 at offset.
func float32At(b []byte, off int) float32 {
	bits := uint32(b[off]) | uint32(b[off+1])<<8 | uint32(b[off+2])<<16 | uint32(b[off+3])<<24
	return math.Float32frombits(bits)
}

// LoadGLBWithTexture loads a GLB file and returns its meshes plus the
// first decodable embedded or referenced texture image (nil if none).
func LoadGLBWithTexture(path string) ([]*Mesh, image.Image, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open gltf %q: %w", path, err)
	}

	meshes, err := LoadGLB(path)
	if err != nil {
		return nil, nil, err
	}

	for _, img := range doc.Images {
		var data []byte
		switch {
		case img.BufferView != nil:
			view := doc.BufferViews[*img.BufferView]
			buf := doc.Buffers[view.Buffer]
			if buf.Data != nil {
				data = buf.Data[view.ByteOffset : view.ByteOffset+view.ByteLength]
			}
		case img.URI != "":
			data, _ = os.ReadFile(filepath.Join(filepath.Dir(path), img.URI))
		}
		if len(data) == 0 {
			continue
		}
		if decoded, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return meshes, decoded, nil
		}
	}

	return meshes, nil, nil
}
