package render

import "fmt"

// Framebuffer is a borrowed view over a color slab and a depth slab with
// bounds-checked pixel access. The slabs themselves are owned by the
// Renderer; a view is created for the duration of a fill pass.
//
// The depth slab stores 1/w (reciprocal of clip-space W) per pixel. 1/w
// interpolates linearly in screen space, and larger values are closer to
// the camera, so the depth test is a plain > comparison. A cleared depth
// of 0.0 means infinitely far.
type Framebuffer struct {
	color  []uint32
	depth  []float64
	width  int
	height int
}

// NewFramebuffer creates a view over the given slabs.
// Panics if either slab length does not match width*height; mismatched
// dimensions are a programmer error, not a runtime condition.
func NewFramebuffer(color []uint32, depth []float64, width, height int) *Framebuffer {
	if len(color) != width*height || len(depth) != width*height {
		panic(fmt.Sprintf("render: framebuffer slabs don't match %dx%d", width, height))
	}
	return &Framebuffer{color: color, depth: depth, width: width, height: height}
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// SetPixel writes a color without depth testing (overlays, UI).
// Out-of-range coordinates are silently dropped.
func (fb *Framebuffer) SetPixel(x, y int, color uint32) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.color[y*fb.width+x] = color
}

// SetPixelWithDepth writes color and depth iff depth > the existing value
// at (x, y). Out-of-range coordinates are silently dropped.
func (fb *Framebuffer) SetPixelWithDepth(x, y int, depth float64, color uint32) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	idx := y*fb.width + x
	if depth > fb.depth[idx] {
		fb.depth[idx] = depth
		fb.color[idx] = color
	}
}

// Pixel returns the color at (x, y) and whether the coordinates were in
// range.
func (fb *Framebuffer) Pixel(x, y int) (uint32, bool) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return 0, false
	}
	return fb.color[y*fb.width+x], true
}

// Depth returns the stored 1/w at (x, y) and whether the coordinates were
// in range.
func (fb *Framebuffer) Depth(x, y int) (float64, bool) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return 0, false
	}
	return fb.depth[y*fb.width+x], true
}
