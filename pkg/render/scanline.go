package render

import (
	"math"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

// ScanlineRasterizer fills triangles with the classic flat-top/flat-bottom
// decomposition, one horizontal span at a time.
//
// Vertices are sorted by Y and a general triangle is split at the middle
// vertex's Y into a flat-bottom and a flat-top half. Span endpoints come
// from the inverse slopes dx/dy of the bounding edges. Sorting is only a
// traversal convenience: per-pixel barycentric weights are computed
// against the original unsorted vertices, so attribute interpolation and
// the depth write share the edge-function rasterizer's contract.
//
// Pixels are sampled at integer coordinates and spans include both end
// pixels and both end rows; the top-left fill rule is not applied.
type ScanlineRasterizer struct{}

// FillTriangle implements Rasterizer. The shader is selected from the
// triangle's texture and shading modes; textured modes need a non-nil
// texture and otherwise fall back to the untextured path.
func (ScanlineRasterizer) FillTriangle(tri *Triangle, fb *Framebuffer, color uint32, texture *Texture) {
	switch {
	case tri.TextureMode == TextureReplace && texture != nil:
		rasterizeScanline(fb, tri, NewPerspectiveTextureShader(texture, tri.Texcoords, tri.Points))
	case tri.TextureMode == TextureModulate && texture != nil:
		rasterizeScanline(fb, tri, NewPerspectiveTextureModulateShader(texture, tri.Texcoords, tri.Points, tri.VertexColors))
	case tri.ShadingMode == ShadingGouraud:
		rasterizeScanline(fb, tri, NewGouraudShader(tri.VertexColors))
	default:
		rasterizeScanline(fb, tri, NewFlatShader(color))
	}
}

// spanFiller carries the per-triangle state shared by every span: the
// original vertices for barycentric computation, their 1/w, and the
// framebuffer.
type spanFiller[S PixelShader] struct {
	fb      *Framebuffer
	v0      math3d.Vec3
	v1      math3d.Vec3
	v2      math3d.Vec3
	invArea float64
	invW    [3]float64
	shader  S
}

// fillSpan fills one scanline between the two edge X positions.
func (f *spanFiller[S]) fillSpan(y int, xLeft, xRight float64) {
	if y < 0 || y >= f.fb.Height() {
		return
	}
	xStart := max(int(math.Ceil(xLeft)), 0)
	xEnd := min(int(math.Floor(xRight)), f.fb.Width()-1)

	for x := xStart; x <= xEnd; x++ {
		p := math3d.V3(float64(x), float64(y), 0)

		w0 := edgeFunction(f.v1, f.v2, p)
		w1 := edgeFunction(f.v2, f.v0, p)
		w2 := edgeFunction(f.v0, f.v1, p)
		lambda := [3]float64{w0 * f.invArea, w1 * f.invArea, w2 * f.invArea}

		depth := lambda[0]*f.invW[0] + lambda[1]*f.invW[1] + lambda[2]*f.invW[2]
		f.fb.SetPixelWithDepth(x, y, depth, f.shader.Shade(lambda))
	}
}

// fillFlatBottom fills a triangle whose two bottom vertices share the same
// Y: apex v0 above v1 and v2.
func (f *spanFiller[S]) fillFlatBottom(v0, v1, v2 math3d.Vec3) {
	height := v1.Y - v0.Y
	if math.Abs(height) < degenerateAreaEpsilon {
		return
	}

	invSlope1 := (v1.X - v0.X) / height
	invSlope2 := (v2.X - v0.X) / height

	yStart := int(math.Ceil(v0.Y))
	yEnd := int(math.Floor(v1.Y))

	for y := yStart; y <= yEnd; y++ {
		dy := float64(y) - v0.Y
		x1 := v0.X + invSlope1*dy
		x2 := v0.X + invSlope2*dy
		f.fillSpan(y, math.Min(x1, x2), math.Max(x1, x2))
	}
}

// fillFlatTop fills a triangle whose two top vertices share the same Y:
// v0 and v1 above apex v2.
func (f *spanFiller[S]) fillFlatTop(v0, v1, v2 math3d.Vec3) {
	height := v2.Y - v0.Y
	if math.Abs(height) < degenerateAreaEpsilon {
		return
	}

	invSlope1 := (v2.X - v0.X) / height
	invSlope2 := (v2.X - v1.X) / height

	yStart := int(math.Ceil(v0.Y))
	yEnd := int(math.Floor(v2.Y))

	for y := yStart; y <= yEnd; y++ {
		dy := float64(y) - v0.Y
		x1 := v0.X + invSlope1*dy
		x2 := v1.X + invSlope2*dy
		f.fillSpan(y, math.Min(x1, x2), math.Max(x1, x2))
	}
}

// rasterizeScanline decomposes and fills the triangle, generic over the
// shader so the per-pixel Shade call monomorphizes.
func rasterizeScanline[S PixelShader](fb *Framebuffer, tri *Triangle, shader S) {
	area := edgeFunction(tri.Points[0], tri.Points[1], tri.Points[2])
	if math.Abs(area) < degenerateAreaEpsilon {
		return
	}

	f := spanFiller[S]{
		fb:      fb,
		v0:      tri.Points[0],
		v1:      tri.Points[1],
		v2:      tri.Points[2],
		invArea: 1 / area,
		invW: [3]float64{
			invDepth(tri.Points[0].Z),
			invDepth(tri.Points[1].Z),
			invDepth(tri.Points[2].Z),
		},
		shader: shader,
	}

	// Sort a traversal copy by Y; three comparisons suffice
	s0, s1, s2 := f.v0, f.v1, f.v2
	if s1.Y < s0.Y {
		s0, s1 = s1, s0
	}
	if s2.Y < s1.Y {
		s1, s2 = s2, s1
	}
	if s1.Y < s0.Y {
		s0, s1 = s1, s0
	}

	switch {
	case math.Abs(s1.Y-s2.Y) < degenerateAreaEpsilon:
		// Already flat-bottom
		f.fillFlatBottom(s0, s1, s2)
	case math.Abs(s0.Y-s1.Y) < degenerateAreaEpsilon:
		// Already flat-top
		f.fillFlatTop(s0, s1, s2)
	default:
		// General triangle: split at the middle vertex's Y. The split
		// point lies on edge s0->s2.
		t := (s1.Y - s0.Y) / (s2.Y - s0.Y)
		split := math3d.V3(s0.X+(s2.X-s0.X)*t, s1.Y, 0)

		f.fillFlatBottom(s0, s1, split)
		f.fillFlatTop(s1, split, s2)
	}
}
