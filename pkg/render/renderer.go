package render

import "unsafe"

// Depth bias so wireframe overlays render slightly in front of the fill
// they outline.
const wireframeDepthBias = 0.0001

// Renderer owns the color and depth slabs and provides primitive drawing
// operations: clearing, grids, rectangles, depth-tested lines.
// Triangle filling goes through a Rasterizer with a Framebuffer view.
type Renderer struct {
	colorBuffer []uint32
	depthBuffer []float64
	width       int
	height      int
}

// NewRenderer creates a renderer with width x height buffers, color cleared
// to the background and depth cleared to 0 (infinitely far).
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{}
	r.Resize(width, height)
	return r
}

// Resize reallocates both buffers for the new dimensions.
func (r *Renderer) Resize(width, height int) {
	size := width * height
	r.colorBuffer = make([]uint32, size)
	r.depthBuffer = make([]float64, size)
	r.width = width
	r.height = height
	r.Clear(ColorBackground)
}

// Width returns the buffer width in pixels.
func (r *Renderer) Width() int {
	return r.width
}

// Height returns the buffer height in pixels.
func (r *Renderer) Height() int {
	return r.height
}

// Clear fills the color buffer with a solid color.
func (r *Renderer) Clear(color uint32) {
	for i := range r.colorBuffer {
		r.colorBuffer[i] = color
	}
}

// ClearDepth resets the depth buffer for a new frame.
// All depths become 0.0, i.e. infinitely far (1/w as w approaches infinity).
func (r *Renderer) ClearDepth() {
	for i := range r.depthBuffer {
		r.depthBuffer[i] = 0
	}
}

// SetPixel writes a color without depth testing.
// Out-of-range coordinates are silently dropped.
func (r *Renderer) SetPixel(x, y int, color uint32) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.colorBuffer[y*r.width+x] = color
}

// SetPixelWithDepth writes color and depth iff the new 1/w is greater than
// the stored one (closer to the camera).
func (r *Renderer) SetPixelWithDepth(x, y int, depth float64, color uint32) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	idx := y*r.width + x
	if depth > r.depthBuffer[idx] {
		r.depthBuffer[idx] = depth
		r.colorBuffer[idx] = color
	}
}

// Pixel returns the color at (x, y) and whether the coordinates were in
// range.
func (r *Renderer) Pixel(x, y int) (uint32, bool) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0, false
	}
	return r.colorBuffer[y*r.width+x], true
}

// DrawGrid draws a pixel grid over the whole buffer at the given spacing.
func (r *Renderer) DrawGrid(spacing int, color uint32) {
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			if x%spacing == 0 || y%spacing == 0 {
				r.SetPixel(x, y, color)
			}
		}
	}
}

// DrawRect draws a filled rectangle without depth testing.
func (r *Renderer) DrawRect(x, y, width, height int, color uint32) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			r.SetPixel(x+dx, y+dy, color)
		}
	}
}

// DrawTriangleWireframe outlines a screen-space triangle with depth-tested
// Bresenham lines. The z slot of each point carries the clip-space w.
func (r *Renderer) DrawTriangleWireframe(tri *Triangle, color uint32) {
	p0, p1, p2 := tri.Points[0], tri.Points[1], tri.Points[2]
	r.DrawLine(int(p0.X), int(p0.Y), p0.Z, int(p1.X), int(p1.Y), p1.Z, color)
	r.DrawLine(int(p1.X), int(p1.Y), p1.Z, int(p2.X), int(p2.Y), p2.Z, color)
	r.DrawLine(int(p2.X), int(p2.Y), p2.Z, int(p0.X), int(p0.Y), p0.Z, color)
}

// DrawVertexMarkers draws a small square at each triangle vertex.
func (r *Renderer) DrawVertexMarkers(tri *Triangle, size int, color uint32) {
	for i := range 3 {
		p := tri.Points[i]
		r.DrawRect(int(p.X)-size/2, int(p.Y)-size/2, size, size, color)
	}
}

// DrawLine draws a line between two points using Bresenham's algorithm with
// per-pixel depth testing. w0 and w1 are the clip-space W of the endpoints;
// 1/w is interpolated linearly along the line and nudged by a small bias so
// wireframes win against their own fill.
func (r *Renderer) DrawLine(x0, y0 int, w0 float64, x1, y1 int, w1 float64, color uint32) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	invW0 := invDepth(w0) + wireframeDepthBias
	invW1 := invDepth(w1) + wireframeDepthBias

	steps := max(dx, dy)
	if steps == 0 {
		r.SetPixelWithDepth(x0, y0, invW0, color)
		return
	}

	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	x, y := x0, y0
	step := 0
	for {
		t := float64(step) / float64(steps)
		r.SetPixelWithDepth(x, y, invW0+t*(invW1-invW0), color)

		if x == x1 && y == y1 {
			break
		}
		step++

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// Bytes exposes the color buffer as little-endian ARGB8888 bytes
// (length 4*W*H), suitable for copying to a host surface.
// The slice aliases the internal buffer and is valid until the next Resize.
func (r *Renderer) Bytes() []byte {
	if len(r.colorBuffer) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&r.colorBuffer[0])), len(r.colorBuffer)*4)
}

// Framebuffer returns a borrowed view over the color and depth slabs for a
// fill pass.
func (r *Renderer) Framebuffer() *Framebuffer {
	return NewFramebuffer(r.colorBuffer, r.depthBuffer, r.width, r.height)
}

func invDepth(w float64) float64 {
	if w == 0 {
		return 0
	}
	return 1 / w
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
