package models

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

// OBJLoader parses Wavefront .obj files into meshes.
type OBJLoader struct {
	// FlipWinding reverses face winding at load time, for meshes exported
	// with the opposite front-face convention. Backface culling assumes
	// loader-normalized faces.
	FlipWinding bool
	// GenerateNormals computes smooth normals when the file has none.
	GenerateNormals bool
}

// NewOBJLoader creates a loader with default options.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{GenerateNormals: true}
}

// LoadOBJ loads all objects/groups of an OBJ file as meshes with the
// default options.
func LoadOBJ(path string) ([]*Mesh, error) {
	return NewOBJLoader().Load(path)
}

// objIndex is one corner of a face: position / texcoord / normal indices
// into the file-global pools (0-based, -1 when absent).
type objIndex struct {
	v, vt, vn int
}

// objObject accumulates the face corners of one o/g section.
type objObject struct {
	name    string
	corners []objIndex // groups of 3, already triangulated
}

// Load parses an OBJ file. Each o/g section becomes one mesh named after
// the section (or "mesh_<i>" when unnamed); empty sections are skipped.
// Returns ErrNoModels when nothing usable remains.
func (l *OBJLoader) Load(path string) ([]*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %q: %w", path, err)
	}
	defer f.Close()

	var positions []math3d.Vec3
	var normals []math3d.Vec3
	var uvs []math3d.Vec2

	var objects []*objObject
	cur := &objObject{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 64)
			y, _ := strconv.ParseFloat(fields[2], 64)
			z, _ := strconv.ParseFloat(fields[3], 64)
			positions = append(positions, math3d.V3(x, y, z))

		case "vn":
			if len(fields) < 4 {
				continue
			}
			x, _ := strconv.ParseFloat(fields[1], 64)
			y, _ := strconv.ParseFloat(fields[2], 64)
			z, _ := strconv.ParseFloat(fields[3], 64)
			normals = append(normals, math3d.V3(x, y, z))

		case "vt":
			if len(fields) < 3 {
				continue
			}
			u, _ := strconv.ParseFloat(fields[1], 64)
			v, _ := strconv.ParseFloat(fields[2], 64)
			uvs = append(uvs, math3d.V2(u, v))

		case "o", "g":
			// Start a new section; keep the previous one if it has faces
			if len(cur.corners) > 0 {
				objects = append(objects, cur)
			}
			name := ""
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = &objObject{name: name}

		case "f":
			if len(fields) < 4 {
				continue
			}
			corners := make([]objIndex, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := parseFaceRef(ref, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("obj %q: %w", path, err)
				}
				corners = append(corners, idx)
			}
			// Fan triangulation for polygons with more than 3 corners
			for i := 1; i+1 < len(corners); i++ {
				tri := [3]objIndex{corners[0], corners[i], corners[i+1]}
				if l.FlipWinding {
					tri[1], tri[2] = tri[2], tri[1]
				}
				cur.corners = append(cur.corners, tri[0], tri[1], tri[2])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj %q: %w", path, err)
	}
	if len(cur.corners) > 0 {
		objects = append(objects, cur)
	}

	if len(positions) == 0 {
		return nil, fmt.Errorf("obj %q: %w", path, ErrNoVertices)
	}

	meshes := make([]*Mesh, 0, len(objects))
	for i, obj := range objects {
		name := obj.name
		if name == "" {
			name = fmt.Sprintf("mesh_%d", i)
		}
		mesh := l.buildMesh(name, obj, positions, normals, uvs)
		if mesh.TriangleCount() == 0 {
			continue
		}
		if err := mesh.Validate(); err != nil {
			return nil, fmt.Errorf("obj %q: %w", path, err)
		}
		meshes = append(meshes, mesh)
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("obj %q: %w", path, ErrNoModels)
	}
	return meshes, nil
}

// buildMesh converts an object's face corners into an indexed mesh,
// deduplicating identical position/uv/normal triplets.
func (l *OBJLoader) buildMesh(name string, obj *objObject, positions, normals []math3d.Vec3, uvs []math3d.Vec2) *Mesh {
	mesh := NewMesh(name)
	seen := make(map[objIndex]int, len(obj.corners))
	hasNormals := false

	for i := 0; i+2 < len(obj.corners); i += 3 {
		var face Face
		for c := range 3 {
			corner := obj.corners[i+c]
			idx, ok := seen[corner]
			if !ok {
				v := Vertex{Position: positions[corner.v]}
				if corner.vt >= 0 {
					v.UV = uvs[corner.vt]
				}
				if corner.vn >= 0 {
					v.Normal = normals[corner.vn]
					hasNormals = true
				}
				idx = len(mesh.Vertices)
				mesh.Vertices = append(mesh.Vertices, v)
				seen[corner] = idx
			}
			face.V[c] = idx
		}
		mesh.Faces = append(mesh.Faces, face)
	}

	if l.GenerateNormals && !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	return mesh
}

// parseFaceRef parses one face corner reference: "v", "v/vt", "v//vn", or
// "v/vt/vn". OBJ indices are 1-based; negative indices count back from the
// end of the pool. Out-of-range references are a load error.
func parseFaceRef(ref string, nPos, nUV, nNorm int) (objIndex, error) {
	parts := strings.Split(ref, "/")
	idx := objIndex{v: -1, vt: -1, vn: -1}

	resolve := func(s string, n int) (int, error) {
		raw, err := strconv.Atoi(s)
		if err != nil {
			return -1, fmt.Errorf("face reference %q: %w", ref, ErrInvalidFaceIndices)
		}
		i := raw
		if i < 0 {
			i = n + i // relative to the end
		} else {
			i-- // 1-based to 0-based
		}
		if i < 0 || i >= n {
			return -1, fmt.Errorf("face reference %q out of range: %w", ref, ErrInvalidFaceIndices)
		}
		return i, nil
	}

	var err error
	if idx.v, err = resolve(parts[0], nPos); err != nil {
		return idx, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if idx.vt, err = resolve(parts[1], nUV); err != nil {
			return idx, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if idx.vn, err = resolve(parts[2], nNorm); err != nil {
			return idx, err
		}
	}
	return idx, nil
}
