package render

import (
	"math"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

// Legacy view-space clipping path. The active pipeline clips in clip space
// (see clipper.go); the view-space frustum is kept for callers that clip
// before projection.

// Plane is a view-space plane defined by a point and an inward-facing
// normal.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// SignedDistance returns the signed distance from a point to the plane.
// Positive means inside (same side as the normal).
func (p Plane) SignedDistance(point math3d.Vec3) float64 {
	return point.Sub(p.Point).Dot(p.Normal)
}

// ViewFrustum holds the six view-space planes of a perspective frustum,
// ordered left, right, top, bottom, near, far.
type ViewFrustum struct {
	Planes [6]Plane
}

// NewViewFrustum builds frustum planes from the horizontal and vertical
// fields of view (radians) and the near/far distances. The side planes
// pass through the camera origin; near and far sit on the Z axis.
func NewViewFrustum(fovX, fovY, near, far float64) ViewFrustum {
	halfX := fovX / 2
	halfY := fovY / 2
	return ViewFrustum{
		Planes: [6]Plane{
			{Normal: math3d.V3(math.Cos(halfX), 0, math.Sin(halfX))},
			{Normal: math3d.V3(-math.Cos(halfX), 0, math.Sin(halfX))},
			{Normal: math3d.V3(0, -math.Cos(halfY), math.Sin(halfY))},
			{Normal: math3d.V3(0, math.Cos(halfY), math.Sin(halfY))},
			{Point: math3d.V3(0, 0, near), Normal: math3d.V3(0, 0, 1)},
			{Point: math3d.V3(0, 0, far), Normal: math3d.V3(0, 0, -1)},
		},
	}
}

// ViewVertex is a view-space vertex with interpolatable attributes, used
// by the view-space clipping path.
type ViewVertex struct {
	Position math3d.Vec3
	Texcoord math3d.Vec2
	Color    uint32
}

// Lerp linearly interpolates all attributes between two vertices.
func (v ViewVertex) Lerp(o ViewVertex, t float64) ViewVertex {
	return ViewVertex{
		Position: v.Position.Lerp(o.Position, t),
		Texcoord: v.Texcoord.Lerp(o.Texcoord, t),
		Color:    LerpColor(v.Color, o.Color, t),
	}
}

// ViewPolygon is a polygon of view-space vertices.
type ViewPolygon struct {
	Vertices []ViewVertex
}

// ViewPolygonFromTriangle creates a polygon from three vertices.
func ViewPolygonFromTriangle(v0, v1, v2 ViewVertex) ViewPolygon {
	return ViewPolygon{Vertices: []ViewVertex{v0, v1, v2}}
}

// IsEmpty reports whether the polygon has been completely clipped away.
func (p ViewPolygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// ClipAgainstPlane runs one Sutherland-Hodgman pass against a view-space
// plane.
func (p ViewPolygon) ClipAgainstPlane(plane Plane) ViewPolygon {
	if len(p.Vertices) < 3 {
		return ViewPolygon{}
	}

	output := make([]ViewVertex, 0, len(p.Vertices)+1)

	for i := range p.Vertices {
		current := p.Vertices[i]
		next := p.Vertices[(i+1)%len(p.Vertices)]

		d1 := plane.SignedDistance(current.Position)
		d2 := plane.SignedDistance(next.Position)

		if d1 >= 0 {
			output = append(output, current)
			if d2 < 0 {
				output = append(output, current.Lerp(next, d1/(d1-d2)))
			}
		} else if d2 >= 0 {
			output = append(output, current.Lerp(next, d1/(d1-d2)))
		}
	}

	return ViewPolygon{Vertices: output}
}

// ClipPolygon clips a polygon against all six frustum planes, with empty
// short-circuit.
func (f ViewFrustum) ClipPolygon(polygon ViewPolygon) ViewPolygon {
	result := polygon
	for _, plane := range f.Planes {
		if result.IsEmpty() {
			break
		}
		result = result.ClipAgainstPlane(plane)
	}
	return result
}
