package render

import "github.com/BeyondBelief96/rusterize/pkg/math3d"

// Clip-space clipping against the homogeneous clip cube.
//
// Clipping happens after projection, before the perspective divide. The
// clip volume is -w <= x,y,z <= w. Compared to view-space clipping this
// needs no plane rebuild when FOV or aspect change, and it avoids the
// sign-flip discontinuity at the near plane.

// ClipVertex is a vertex in homogeneous clip space with interpolatable
// attributes. Instances live for a single face within a frame.
type ClipVertex struct {
	// Position in clip space (x, y, z, w), before perspective divide
	Position math3d.Vec4
	// Texture coordinates
	Texcoord math3d.Vec2
	// Packed ARGB color
	Color uint32
}

// Lerp linearly interpolates every attribute between two vertices: the
// homogeneous position and texcoord component-wise, the color in unpacked
// RGB space. Used when a polygon edge crosses a clipping plane.
func (v ClipVertex) Lerp(o ClipVertex, t float64) ClipVertex {
	return ClipVertex{
		Position: v.Position.Lerp(o.Position, t),
		Texcoord: v.Texcoord.Lerp(o.Texcoord, t),
		Color:    LerpColor(v.Color, o.Color, t),
	}
}

// ClipPlane identifies one of the six half-spaces of the canonical clip
// cube.
type ClipPlane int

const (
	// ClipLeft keeps x >= -w.
	ClipLeft ClipPlane = iota
	// ClipRight keeps x <= w.
	ClipRight
	// ClipBottom keeps y >= -w.
	ClipBottom
	// ClipTop keeps y <= w.
	ClipTop
	// ClipNear keeps z >= -w.
	ClipNear
	// ClipFar keeps z <= w.
	ClipFar
)

// SignedDistance returns the signed distance from a vertex to this plane.
// Positive means inside the clip volume, negative outside.
func (p ClipPlane) SignedDistance(v ClipVertex) float64 {
	pos := v.Position
	switch p {
	case ClipLeft:
		return pos.W + pos.X
	case ClipRight:
		return pos.W - pos.X
	case ClipBottom:
		return pos.W + pos.Y
	case ClipTop:
		return pos.W - pos.Y
	case ClipNear:
		return pos.W + pos.Z
	default: // ClipFar
		return pos.W - pos.Z
	}
}

// ClipPolygon is a polygon in clip space, convex by construction after
// clipping against the convex clip volume. Empty means fewer than 3
// vertices survived.
type ClipPolygon struct {
	Vertices []ClipVertex
}

// PolygonFromTriangle creates a polygon from a triangle's three vertices.
func PolygonFromTriangle(v0, v1, v2 ClipVertex) ClipPolygon {
	return ClipPolygon{Vertices: []ClipVertex{v0, v1, v2}}
}

// IsEmpty reports whether the polygon has been completely clipped away.
func (p ClipPolygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// ClipAgainstPlane clips the polygon against a single plane using the
// Sutherland-Hodgman algorithm and returns the resulting polygon.
//
// Each directed edge (current -> next) of the vertex ring emits:
// in->in the current vertex, in->out current plus the intersection,
// out->in the intersection, out->out nothing. A signed distance of zero
// counts as inside.
func (p ClipPolygon) ClipAgainstPlane(plane ClipPlane) ClipPolygon {
	if len(p.Vertices) < 3 {
		return ClipPolygon{}
	}

	output := make([]ClipVertex, 0, len(p.Vertices)+1)

	for i := range p.Vertices {
		current := p.Vertices[i]
		next := p.Vertices[(i+1)%len(p.Vertices)]

		d1 := plane.SignedDistance(current)
		d2 := plane.SignedDistance(next)

		if d1 >= 0 {
			output = append(output, current)
			if d2 < 0 {
				t := d1 / (d1 - d2)
				output = append(output, current.Lerp(next, t))
			}
		} else if d2 >= 0 {
			t := d1 / (d1 - d2)
			output = append(output, current.Lerp(next, t))
		}
	}

	return ClipPolygon{Vertices: output}
}

// TriangleCount returns the number of triangles a fan triangulation of the
// polygon produces.
func (p ClipPolygon) TriangleCount() int {
	if len(p.Vertices) < 3 {
		return 0
	}
	return len(p.Vertices) - 2
}

// Triangle returns the i-th triangle of the fan anchored at vertex 0:
// (v0, v[i+1], v[i+2]).
func (p ClipPolygon) Triangle(i int) (ClipVertex, ClipVertex, ClipVertex) {
	return p.Vertices[0], p.Vertices[i+1], p.Vertices[i+2]
}

// Clipper clips polygons against the six planes of the canonical clip cube.
// It is stateless; the planes are fixed constants.
type Clipper struct {
	planes [6]ClipPlane
}

// NewClipper creates a clip-space clipper.
func NewClipper() Clipper {
	return Clipper{
		planes: [6]ClipPlane{ClipLeft, ClipRight, ClipBottom, ClipTop, ClipNear, ClipFar},
	}
}

// ClipPolygon clips a polygon against all six planes. A polygon that
// becomes empty short-circuits the remaining planes. The result may be
// empty if the input was entirely outside the clip volume.
func (c Clipper) ClipPolygon(polygon ClipPolygon) ClipPolygon {
	result := polygon
	for _, plane := range c.planes {
		if result.IsEmpty() {
			break
		}
		result = result.ClipAgainstPlane(plane)
	}
	return result
}
