package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
)

// Texture holds a 2D image for texture mapping, as packed ARGB pixels in
// row-major top-left origin order.
//
// Sampling is nearest-neighbor with repeat wrap. V is flipped on sampling
// to convert from the bottom-left OBJ convention to the top-left image
// convention.
type Texture struct {
	width  int
	height int
	pixels []uint32
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		width:  width,
		height: height,
		pixels: make([]uint32, width*height),
	}
}

// LoadTexture loads a texture from an image file (PNG or JPEG).
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	return FromImage(img), nil
}

// FromImage creates a texture from an image.Image.
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())

	for y := range tex.height {
		for x := range tex.width {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit channels, scale to 8-bit
			tex.pixels[y*tex.width+x] = uint32(a>>8)<<24 |
				uint32(r>>8)<<16 |
				uint32(g>>8)<<8 |
				uint32(b>>8)
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 uint32) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// NewGradientTexture creates a horizontal gradient texture.
func NewGradientTexture(width, height int, left, right uint32) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			t := float64(x) / float64(width-1)
			tex.SetPixel(x, y, LerpColor(left, right, t))
		}
	}
	return tex
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.height
}

// SetPixel sets a pixel with bounds checking.
func (t *Texture) SetPixel(x, y int, color uint32) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	t.pixels[y*t.width+x] = color
}

// Pixel returns the pixel at (x, y), or 0 if out of bounds.
func (t *Texture) Pixel(x, y int) uint32 {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return 0
	}
	return t.pixels[y*t.width+x]
}

// Sample returns the nearest texel at UV coordinates.
//
// U and V wrap with repeat semantics (euclidean mod, never negative).
// V is flipped: OBJ texcoords use a bottom-left origin while the pixel
// array is stored top-left.
func (t *Texture) Sample(u, v float64) uint32 {
	u = u - math.Floor(u)
	// Wrap first, then flip, so v=0 lands on the bottom row exactly
	v = 1 - (v - math.Floor(v))

	x := int(u * float64(t.width))
	y := int(v * float64(t.height))
	if x >= t.width {
		x = t.width - 1
	}
	if y >= t.height {
		y = t.height - 1
	}

	return t.pixels[y*t.width+x]
}
