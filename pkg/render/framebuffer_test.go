package render

import "testing"

func TestFramebufferDepthTest(t *testing.T) {
	r := NewRenderer(10, 10)
	r.ClearDepth()
	fb := r.Framebuffer()

	// For any write sequence the surviving color has the maximum 1/w
	writes := []struct {
		depth float64
		color uint32
	}{
		{0.1, ColorRed},
		{0.5, ColorGreen}, // nearest
		{0.3, ColorBlue},
		{0.5, ColorYellow}, // equal depth loses to the first writer
		{0.2, ColorCyan},
	}
	for _, w := range writes {
		fb.SetPixelWithDepth(4, 4, w.depth, w.color)
	}

	if c, _ := fb.Pixel(4, 4); c != ColorGreen {
		t.Errorf("pixel = %#08x, want the write with max 1/w (green)", c)
	}
	if d, _ := fb.Depth(4, 4); d != 0.5 {
		t.Errorf("depth = %g, want 0.5", d)
	}
}

func TestFramebufferOutOfRangeDropped(t *testing.T) {
	r := NewRenderer(10, 10)
	r.ClearDepth()
	fb := r.Framebuffer()

	// None of these may panic or write
	fb.SetPixel(-1, 5, ColorRed)
	fb.SetPixel(5, -1, ColorRed)
	fb.SetPixel(10, 5, ColorRed)
	fb.SetPixel(5, 10, ColorRed)
	fb.SetPixelWithDepth(-1, 0, 1, ColorRed)
	fb.SetPixelWithDepth(0, 10, 1, ColorRed)

	if countColor(r, ColorRed) != 0 {
		t.Error("out-of-range write landed in the buffer")
	}
	if _, ok := fb.Pixel(10, 10); ok {
		t.Error("out-of-range read reported ok")
	}
}

func TestFramebufferDimensionMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mismatched slab size should panic")
		}
	}()
	NewFramebuffer(make([]uint32, 10), make([]float64, 100), 10, 10)
}

func TestClearDepthResets(t *testing.T) {
	r := NewRenderer(4, 4)
	r.ClearDepth()
	fb := r.Framebuffer()

	fb.SetPixelWithDepth(1, 1, 0.9, ColorRed)
	r.ClearDepth()

	// After the clear, any positive depth wins again
	fb.SetPixelWithDepth(1, 1, 0.1, ColorBlue)
	if c, _ := fb.Pixel(1, 1); c != ColorBlue {
		t.Errorf("pixel = %#08x after depth clear, want blue", c)
	}
}

func TestRendererBytes(t *testing.T) {
	r := NewRenderer(2, 2)
	r.Clear(0)
	r.SetPixel(0, 0, 0xFF123456)

	b := r.Bytes()
	if len(b) != 16 {
		t.Fatalf("byte length = %d, want 16", len(b))
	}
	// Little-endian ARGB8888: 0xFF123456 -> 56 34 12 FF
	if b[0] != 0x56 || b[1] != 0x34 || b[2] != 0x12 || b[3] != 0xFF {
		t.Errorf("first pixel bytes = % x, want 56 34 12 ff", b[:4])
	}
}

func TestDrawLineDepthBias(t *testing.T) {
	r := NewRenderer(20, 20)
	r.ClearDepth()
	fb := r.Framebuffer()

	// Fill a region at w = 2, then draw a wireframe line at the same w:
	// the bias must let the line win
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			fb.SetPixelWithDepth(x, y, 0.5, ColorRed)
		}
	}
	r.DrawLine(0, 10, 2, 19, 10, 2, ColorGreen)

	if c, _ := r.Pixel(10, 10); c != ColorGreen {
		t.Errorf("wireframe pixel = %#08x, want green over equal-depth fill", c)
	}
}

func TestDrawGrid(t *testing.T) {
	r := NewRenderer(10, 10)
	r.Clear(ColorBlack)
	r.DrawGrid(3, ColorGrid)

	if c, _ := r.Pixel(3, 1); c != ColorGrid {
		t.Error("grid column missing")
	}
	if c, _ := r.Pixel(1, 6); c != ColorGrid {
		t.Error("grid row missing")
	}
	if c, _ := r.Pixel(1, 1); c != ColorBlack {
		t.Error("non-grid pixel painted")
	}
}
