package render

import "github.com/BeyondBelief96/rusterize/pkg/math3d"

// Pixel shaders compute the color of one covered pixel from its barycentric
// weights. The rasterizer handles coverage, the top-left rule, barycentric
// computation, and the depth test; the shader handles attribute
// interpolation and texture sampling.
//
// The lambda weights sum to 1 for any point inside the triangle and weigh
// each vertex's contribution, so any per-vertex attribute interpolates as
// lambda[0]*a0 + lambda[1]*a1 + lambda[2]*a2.

// PixelShader computes a packed ARGB color for a pixel given its
// barycentric weights. The rasterizer inner loop is generic over the
// concrete shader type so the call devirtualizes.
type PixelShader interface {
	Shade(lambda [3]float64) uint32
}

// FlatShader returns a constant color for every pixel.
type FlatShader struct {
	color uint32
}

// NewFlatShader creates a flat shader with the given color.
func NewFlatShader(color uint32) FlatShader {
	return FlatShader{color: color}
}

// Shade implements PixelShader.
func (s FlatShader) Shade(_ [3]float64) uint32 {
	return s.color
}

// GouraudShader interpolates per-vertex colors across the triangle.
// Colors are unpacked once at construction and interpolated in float RGB.
type GouraudShader struct {
	colors [3]RGB
}

// NewGouraudShader creates a Gouraud shader from packed vertex colors.
func NewGouraudShader(vertexColors [3]uint32) GouraudShader {
	return GouraudShader{
		colors: [3]RGB{
			UnpackColor(vertexColors[0]),
			UnpackColor(vertexColors[1]),
			UnpackColor(vertexColors[2]),
		},
	}
}

// Shade implements PixelShader.
func (s GouraudShader) Shade(lambda [3]float64) uint32 {
	r := lambda[0]*s.colors[0].R + lambda[1]*s.colors[1].R + lambda[2]*s.colors[2].R
	g := lambda[0]*s.colors[0].G + lambda[1]*s.colors[1].G + lambda[2]*s.colors[2].G
	b := lambda[0]*s.colors[0].B + lambda[1]*s.colors[1].B + lambda[2]*s.colors[2].B
	return PackColor(r, g, b, 1)
}

// TextureShader samples the texture at affine-interpolated UV coordinates.
// The texture color replaces vertex colors entirely.
type TextureShader struct {
	texture *Texture
	uvs     [3]math3d.Vec2
}

// NewTextureShader creates an affine texture-replace shader.
func NewTextureShader(texture *Texture, uvs [3]math3d.Vec2) TextureShader {
	return TextureShader{texture: texture, uvs: uvs}
}

// Shade implements PixelShader.
func (s TextureShader) Shade(lambda [3]float64) uint32 {
	u := lambda[0]*s.uvs[0].X + lambda[1]*s.uvs[1].X + lambda[2]*s.uvs[2].X
	v := lambda[0]*s.uvs[0].Y + lambda[1]*s.uvs[1].Y + lambda[2]*s.uvs[2].Y
	return s.texture.Sample(u, v)
}

// TextureModulateShader samples the texture and multiplies it by the
// lighting intensity interpolated from the vertex colors (mean of the
// unpacked RGB channels).
type TextureModulateShader struct {
	texture *Texture
	uvs     [3]math3d.Vec2
	colors  [3]RGB
}

// NewTextureModulateShader creates an affine texture-modulate shader.
func NewTextureModulateShader(texture *Texture, uvs [3]math3d.Vec2, vertexColors [3]uint32) TextureModulateShader {
	return TextureModulateShader{
		texture: texture,
		uvs:     uvs,
		colors: [3]RGB{
			UnpackColor(vertexColors[0]),
			UnpackColor(vertexColors[1]),
			UnpackColor(vertexColors[2]),
		},
	}
}

// Shade implements PixelShader.
func (s TextureModulateShader) Shade(lambda [3]float64) uint32 {
	u := lambda[0]*s.uvs[0].X + lambda[1]*s.uvs[1].X + lambda[2]*s.uvs[2].X
	v := lambda[0]*s.uvs[0].Y + lambda[1]*s.uvs[1].Y + lambda[2]*s.uvs[2].Y

	r := lambda[0]*s.colors[0].R + lambda[1]*s.colors[1].R + lambda[2]*s.colors[2].R
	g := lambda[0]*s.colors[0].G + lambda[1]*s.colors[1].G + lambda[2]*s.colors[2].G
	b := lambda[0]*s.colors[0].B + lambda[1]*s.colors[1].B + lambda[2]*s.colors[2].B

	return Modulate(s.texture.Sample(u, v), (r+g+b)/3)
}

// Perspective-correct variants.
//
// Affine interpolation of UVs is wrong under perspective: attributes vary
// linearly in screen space only when divided by w. These shaders
// interpolate attr/w and 1/w linearly and recover the true attribute as
// their ratio, fixing the "swimming texture" artifact. The clip-space w of
// each vertex arrives in the z slot of the screen-space points.

// PerspectiveTextureShader is the perspective-correct texture-replace
// shader.
type PerspectiveTextureShader struct {
	texture *Texture
	uvOverW [3]math3d.Vec2
	invW    [3]float64
}

// NewPerspectiveTextureShader creates a perspective-correct texture-replace
// shader. points are the screen-space vertices with clip-space w in z.
func NewPerspectiveTextureShader(texture *Texture, uvs [3]math3d.Vec2, points [3]math3d.Vec3) PerspectiveTextureShader {
	s := PerspectiveTextureShader{texture: texture}
	for i := range 3 {
		s.invW[i] = invDepth(points[i].Z)
		s.uvOverW[i] = uvs[i].Scale(s.invW[i])
	}
	return s
}

// Shade implements PixelShader.
func (s PerspectiveTextureShader) Shade(lambda [3]float64) uint32 {
	oneOverW := lambda[0]*s.invW[0] + lambda[1]*s.invW[1] + lambda[2]*s.invW[2]
	if oneOverW == 0 {
		return 0
	}
	u := (lambda[0]*s.uvOverW[0].X + lambda[1]*s.uvOverW[1].X + lambda[2]*s.uvOverW[2].X) / oneOverW
	v := (lambda[0]*s.uvOverW[0].Y + lambda[1]*s.uvOverW[1].Y + lambda[2]*s.uvOverW[2].Y) / oneOverW
	return s.texture.Sample(u, v)
}

// PerspectiveTextureModulateShader is the perspective-correct
// texture-modulate shader.
type PerspectiveTextureModulateShader struct {
	texture        *Texture
	uvOverW        [3]math3d.Vec2
	intensityOverW [3]float64
	invW           [3]float64
}

// NewPerspectiveTextureModulateShader creates a perspective-correct
// texture-modulate shader. points carry clip-space w in z; vertexColors
// carry the per-vertex lighting.
func NewPerspectiveTextureModulateShader(texture *Texture, uvs [3]math3d.Vec2, points [3]math3d.Vec3, vertexColors [3]uint32) PerspectiveTextureModulateShader {
	s := PerspectiveTextureModulateShader{texture: texture}
	for i := range 3 {
		s.invW[i] = invDepth(points[i].Z)
		s.uvOverW[i] = uvs[i].Scale(s.invW[i])
		s.intensityOverW[i] = UnpackColor(vertexColors[i]).Intensity() * s.invW[i]
	}
	return s
}

// Shade implements PixelShader.
func (s PerspectiveTextureModulateShader) Shade(lambda [3]float64) uint32 {
	oneOverW := lambda[0]*s.invW[0] + lambda[1]*s.invW[1] + lambda[2]*s.invW[2]
	if oneOverW == 0 {
		return 0
	}
	u := (lambda[0]*s.uvOverW[0].X + lambda[1]*s.uvOverW[1].X + lambda[2]*s.uvOverW[2].X) / oneOverW
	v := (lambda[0]*s.uvOverW[0].Y + lambda[1]*s.uvOverW[1].Y + lambda[2]*s.uvOverW[2].Y) / oneOverW
	intensity := (lambda[0]*s.intensityOverW[0] + lambda[1]*s.intensityOverW[1] + lambda[2]*s.intensityOverW[2]) / oneOverW
	return Modulate(s.texture.Sample(u, v), intensity)
}
