package render

import "github.com/BeyondBelief96/rusterize/pkg/math3d"

// ShadingMode selects how triangle colors are computed.
type ShadingMode int

const (
	// ShadingNone uses the base color unchanged.
	ShadingNone ShadingMode = iota
	// ShadingFlat lights the whole face with one color.
	ShadingFlat
	// ShadingGouraud lights each vertex and interpolates across the face.
	ShadingGouraud
)

// String returns the mode name.
func (m ShadingMode) String() string {
	switch m {
	case ShadingFlat:
		return "Flat"
	case ShadingGouraud:
		return "Gouraud"
	default:
		return "None"
	}
}

// TextureMode selects how the texture combines with lighting.
type TextureMode int

const (
	// TextureNone disables texturing.
	TextureNone TextureMode = iota
	// TextureReplace uses the texture color directly.
	TextureReplace
	// TextureModulate multiplies the texture by the lighting intensity.
	TextureModulate
)

// String returns the mode name.
func (m TextureMode) String() string {
	switch m {
	case TextureReplace:
		return "Replace"
	case TextureModulate:
		return "Modulate"
	default:
		return "None"
	}
}

// Triangle is a triangle ready for rasterization in screen space.
//
// Points hold pixel coordinates in x,y; the z slot stores the clip-space W
// of the vertex, which the rasterizer inverts for depth testing and the
// perspective-correct shaders use for attribute recovery.
type Triangle struct {
	Points       [3]math3d.Vec3
	Color        uint32 // flat-shading color
	VertexColors [3]uint32
	Texcoords    [3]math3d.Vec2
	ShadingMode  ShadingMode
	TextureMode  TextureMode
	AvgDepth     float64
}

// Rasterizer fills screen-space triangles into a framebuffer. Both
// implementations invoke a pixel shader for each covered pixel and write
// through the depth test with interpolated 1/w. The edge-function filler
// samples pixel centers and applies the top-left fill rule, so a pixel on
// a shared edge is covered by exactly one triangle; the scanline filler
// samples integer pixel coordinates and includes pixels lying exactly on
// any edge, so such pixels are covered by every triangle sharing the edge.
type Rasterizer interface {
	// FillTriangle fills a triangle. color is the flat fill color;
	// texture may be nil, in which case textured modes fall back to the
	// untextured shader for the triangle's shading mode.
	FillTriangle(tri *Triangle, fb *Framebuffer, color uint32, texture *Texture)
}

// RasterizerType selects which rasterization algorithm the engine uses.
type RasterizerType int

const (
	// RasterizerScanline decomposes triangles into flat-top/flat-bottom
	// halves and fills horizontal spans. Cache-friendly; efficient for
	// thin triangles.
	RasterizerScanline RasterizerType = iota
	// RasterizerEdgeFunction tests each pixel of the bounding box against
	// three edge equations. The basis of GPU rasterization.
	RasterizerEdgeFunction
)

// String returns the algorithm name.
func (t RasterizerType) String() string {
	switch t {
	case RasterizerEdgeFunction:
		return "EdgeFunction"
	default:
		return "Scanline"
	}
}

// Dispatcher holds both rasterizer implementations and forwards to the
// active one. Switching algorithms at runtime is a field write, not an
// allocation.
type Dispatcher struct {
	scanline     ScanlineRasterizer
	edgeFunction EdgeFunctionRasterizer
	active       RasterizerType
}

// NewDispatcher creates a dispatcher with the given initial algorithm.
func NewDispatcher(t RasterizerType) *Dispatcher {
	return &Dispatcher{active: t}
}

// SetType selects the active algorithm.
func (d *Dispatcher) SetType(t RasterizerType) {
	d.active = t
}

// ActiveType returns the active algorithm.
func (d *Dispatcher) ActiveType() RasterizerType {
	return d.active
}

// FillTriangle implements Rasterizer by forwarding to the active
// implementation.
func (d *Dispatcher) FillTriangle(tri *Triangle, fb *Framebuffer, color uint32, texture *Texture) {
	switch d.active {
	case RasterizerEdgeFunction:
		d.edgeFunction.FillTriangle(tri, fb, color, texture)
	default:
		d.scanline.FillTriangle(tri, fb, color, texture)
	}
}
