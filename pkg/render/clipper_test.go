package render

import (
	"math"
	"testing"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

func clipVert(x, y, z, w float64) ClipVertex {
	return ClipVertex{Position: math3d.V4(x, y, z, w), Color: ColorWhite}
}

// insideClipCube checks -w <= x,y,z <= w within tolerance.
func insideClipCube(v ClipVertex, eps float64) bool {
	p := v.Position
	return p.X >= -p.W-eps && p.X <= p.W+eps &&
		p.Y >= -p.W-eps && p.Y <= p.W+eps &&
		p.Z >= -p.W-eps && p.Z <= p.W+eps
}

func TestClipFullyInsideUnchanged(t *testing.T) {
	poly := PolygonFromTriangle(
		clipVert(0.5, 0, 0, 1),
		clipVert(-0.5, 0.5, 0, 1),
		clipVert(0, -0.5, 0.5, 1),
	)

	out := NewClipper().ClipPolygon(poly)
	if len(out.Vertices) != 3 {
		t.Fatalf("fully inside triangle gained/lost vertices: %d", len(out.Vertices))
	}
	for i, v := range out.Vertices {
		if v.Position != poly.Vertices[i].Position {
			t.Errorf("vertex %d moved: %v", i, v.Position)
		}
	}
}

func TestClipFullyOutsideEmpty(t *testing.T) {
	// Entirely beyond the right plane
	poly := PolygonFromTriangle(
		clipVert(2, 0, 0, 1),
		clipVert(3, 1, 0, 1),
		clipVert(3, -1, 0, 1),
	)

	out := NewClipper().ClipPolygon(poly)
	if !out.IsEmpty() {
		t.Errorf("fully outside triangle should clip to empty, got %d vertices", len(out.Vertices))
	}
	if out.TriangleCount() != 0 {
		t.Errorf("empty polygon should triangulate to 0, got %d", out.TriangleCount())
	}
}

func TestClipStraddlingTriangle(t *testing.T) {
	// Straddles several planes at once; the result must be a convex
	// polygon entirely inside the cube
	poly := PolygonFromTriangle(
		clipVert(-2, -2, -2, 1),
		clipVert(2, -2, -2, 1),
		clipVert(0, 2, 2, 1),
	)

	out := NewClipper().ClipPolygon(poly)
	if out.IsEmpty() {
		t.Fatal("straddling triangle should not clip to empty")
	}
	if n := len(out.Vertices); n < 4 || n > 6 {
		t.Errorf("clipped polygon has %d vertices, want 4..6", n)
	}
	for i, v := range out.Vertices {
		if !insideClipCube(v, 1e-9) {
			t.Errorf("vertex %d outside clip cube: %v", i, v.Position)
		}
	}
	if got, want := out.TriangleCount(), len(out.Vertices)-2; got != want {
		t.Errorf("fan produced %d triangles for %d vertices, want %d", got, len(out.Vertices), want)
	}
}

func TestClipOnPlaneCountsInside(t *testing.T) {
	// A vertex exactly on the plane (distance 0) must survive
	poly := PolygonFromTriangle(
		clipVert(1, 0, 0, 1), // on the right plane
		clipVert(0, 0.5, 0, 1),
		clipVert(0, -0.5, 0, 1),
	)

	out := poly.ClipAgainstPlane(ClipRight)
	if len(out.Vertices) != 3 {
		t.Errorf("on-plane vertex dropped, got %d vertices", len(out.Vertices))
	}
}

func TestClipInterpolatesAttributes(t *testing.T) {
	// Edge from inside to outside across the right plane; intersection
	// at t = 0.5 must interpolate position, texcoord, and color
	inside := ClipVertex{
		Position: math3d.V4(0, 0, 0, 1),
		Texcoord: math3d.V2(0, 0),
		Color:    PackRGB(255, 0, 0),
	}
	outside := ClipVertex{
		Position: math3d.V4(2, 0, 0, 1),
		Texcoord: math3d.V2(1, 0.5),
		Color:    PackRGB(0, 0, 255),
	}
	third := ClipVertex{
		Position: math3d.V4(0, 1, 0, 1),
		Texcoord: math3d.V2(0, 1),
		Color:    PackRGB(255, 0, 0),
	}

	out := PolygonFromTriangle(inside, outside, third).ClipAgainstPlane(ClipRight)
	if out.IsEmpty() {
		t.Fatal("partially inside polygon should survive")
	}

	// Find the intersection vertex on the plane x == w
	var hit *ClipVertex
	for i := range out.Vertices {
		v := &out.Vertices[i]
		if math.Abs(v.Position.X-v.Position.W) < 1e-9 && v.Position.Y == 0 {
			hit = v
			break
		}
	}
	if hit == nil {
		t.Fatal("no intersection vertex found on the right plane")
	}

	if math.Abs(hit.Position.X-1) > 1e-9 {
		t.Errorf("intersection x = %g, want 1", hit.Position.X)
	}
	if math.Abs(hit.Texcoord.X-0.5) > 1e-9 || math.Abs(hit.Texcoord.Y-0.25) > 1e-9 {
		t.Errorf("intersection texcoord = %v, want (0.5, 0.25)", hit.Texcoord)
	}
	rgb := UnpackColor(hit.Color)
	if math.Abs(rgb.R-0.5) > 0.01 || math.Abs(rgb.B-0.5) > 0.01 {
		t.Errorf("intersection color = %v, want half red half blue", rgb)
	}
}

func TestClipNearPlaneSplitsQuad(t *testing.T) {
	// One vertex behind the near plane: Sutherland-Hodgman yields a quad
	poly := PolygonFromTriangle(
		clipVert(0, 0, -2, 1), // behind near
		clipVert(1, 0, 0.5, 1),
		clipVert(-1, 0, 0.5, 1),
	)

	out := poly.ClipAgainstPlane(ClipNear)
	if len(out.Vertices) != 4 {
		t.Errorf("one-out near clip should give 4 vertices, got %d", len(out.Vertices))
	}
	if out.TriangleCount() != 2 {
		t.Errorf("quad should fan into 2 triangles, got %d", out.TriangleCount())
	}
}

func TestViewFrustumClip(t *testing.T) {
	proj := NewProjection(math.Pi/2, 1, 1, 10)
	frustum := proj.ViewFrustum()

	// Triangle in front of the camera, inside the 90 degree cone
	inside := ViewPolygonFromTriangle(
		ViewVertex{Position: math3d.V3(0, 0, 5), Color: ColorWhite},
		ViewVertex{Position: math3d.V3(1, 0, 5), Color: ColorWhite},
		ViewVertex{Position: math3d.V3(0, 1, 5), Color: ColorWhite},
	)
	if frustum.ClipPolygon(inside).IsEmpty() {
		t.Error("triangle inside the frustum clipped away")
	}

	// Entirely behind the camera
	behind := ViewPolygonFromTriangle(
		ViewVertex{Position: math3d.V3(0, 0, -5)},
		ViewVertex{Position: math3d.V3(1, 0, -5)},
		ViewVertex{Position: math3d.V3(0, 1, -5)},
	)
	if !frustum.ClipPolygon(behind).IsEmpty() {
		t.Error("triangle behind the camera survived")
	}
}
