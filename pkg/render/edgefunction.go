package render

import (
	"math"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

// EdgeFunctionRasterizer fills triangles by testing every pixel center in
// the bounding box against three edge functions. The edge function for an
// edge A->B at point P is the 2D cross product (B-A) x (P-A); its sign
// classifies P against the edge, and the three values normalized by the
// signed triangle area are the barycentric weights.
//
// Pixels exactly on a shared edge are resolved by the top-left fill rule:
// non-top-left edges get a -1 bias so such pixels fail the >= 0 test and
// are owned by the adjacent triangle. The bias applies to the inside test
// only, never to the barycentric weights.
type EdgeFunctionRasterizer struct{}

// edgeFunction computes the edge function for point p relative to edge
// a -> b.
func edgeFunction(a, b, p math3d.Vec3) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// isTopLeft reports whether edge a -> b is a top or left edge in screen
// space (Y increases downward): horizontal and pointing left, or going
// upward.
func isTopLeft(a, b math3d.Vec3) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return (dy == 0 && dx < 0) || dy < 0
}

// FillTriangle implements Rasterizer. The shader is selected from the
// triangle's texture and shading modes; textured modes need a non-nil
// texture and otherwise fall back to the untextured path.
func (EdgeFunctionRasterizer) FillTriangle(tri *Triangle, fb *Framebuffer, color uint32, texture *Texture) {
	switch {
	case tri.TextureMode == TextureReplace && texture != nil:
		rasterizeEdgeFunction(fb, tri, NewPerspectiveTextureShader(texture, tri.Texcoords, tri.Points))
	case tri.TextureMode == TextureModulate && texture != nil:
		rasterizeEdgeFunction(fb, tri, NewPerspectiveTextureModulateShader(texture, tri.Texcoords, tri.Points, tri.VertexColors))
	case tri.ShadingMode == ShadingGouraud:
		rasterizeEdgeFunction(fb, tri, NewGouraudShader(tri.VertexColors))
	default:
		rasterizeEdgeFunction(fb, tri, NewFlatShader(color))
	}
}

// rasterizeEdgeFunction is the shared inner loop, generic over the shader
// so the per-pixel Shade call monomorphizes.
func rasterizeEdgeFunction[S PixelShader](fb *Framebuffer, tri *Triangle, shader S) {
	v0, v1, v2 := tri.Points[0], tri.Points[1], tri.Points[2]

	// 1/w per vertex; the z slot stores clip-space W
	invW0 := invDepth(v0.Z)
	invW1 := invDepth(v1.Z)
	invW2 := invDepth(v2.Z)

	minX := max(int(math.Floor(min3(v0.X, v1.X, v2.X))), 0)
	maxX := min(int(math.Ceil(max3(v0.X, v1.X, v2.X))), fb.Width()-1)
	minY := max(int(math.Floor(min3(v0.Y, v1.Y, v2.Y))), 0)
	maxY := min(int(math.Ceil(max3(v0.Y, v1.Y, v2.Y))), fb.Height()-1)

	// Signed 2x area; degenerate triangles contribute no pixels
	area := edgeFunction(v0, v1, v2)
	if math.Abs(area) < degenerateAreaEpsilon {
		return
	}
	invArea := 1 / area

	// Top-left biases per edge, opposite vertex order
	bias0 := topLeftBias(v1, v2)
	bias1 := topLeftBias(v2, v0)
	bias2 := topLeftBias(v0, v1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := math3d.V3(float64(x)+0.5, float64(y)+0.5, 0)

			w0 := edgeFunction(v1, v2, p)
			w1 := edgeFunction(v2, v0, p)
			w2 := edgeFunction(v0, v1, p)

			// Inside test with the top-left rule; the sign convention
			// flips with the winding
			var inside bool
			if area > 0 {
				inside = w0+bias0 >= 0 && w1+bias1 >= 0 && w2+bias2 >= 0
			} else {
				inside = w0-bias0 <= 0 && w1-bias1 <= 0 && w2-bias2 <= 0
			}
			if !inside {
				continue
			}

			// Barycentric weights from the unbiased edge values
			lambda := [3]float64{w0 * invArea, w1 * invArea, w2 * invArea}

			depth := lambda[0]*invW0 + lambda[1]*invW1 + lambda[2]*invW2
			fb.SetPixelWithDepth(x, y, depth, shader.Shade(lambda))
		}
	}
}

func topLeftBias(a, b math3d.Vec3) float64 {
	if isTopLeft(a, b) {
		return 0
	}
	return -1
}

const degenerateAreaEpsilon = 1e-9

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
