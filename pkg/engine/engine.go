// Package engine ties the rendering pipeline together: it owns the scene
// (models, camera, projection, light) and runs the per-frame dataflow from
// mesh faces to rasterized pixels.
package engine

import (
	"github.com/BeyondBelief96/rusterize/pkg/math3d"
	"github.com/BeyondBelief96/rusterize/pkg/models"
	"github.com/BeyondBelief96/rusterize/pkg/render"
)

// RenderMode selects which passes Render draws. Fill passes are depth
// tested; wireframe and vertex overlays draw after all fills and are
// order-sensitive.
type RenderMode int

const (
	// RenderModeWireframe draws edges only.
	RenderModeWireframe RenderMode = iota
	// RenderModeWireframeVertex draws edges plus vertex markers.
	RenderModeWireframeVertex
	// RenderModeFilled fills triangles.
	RenderModeFilled
	// RenderModeFilledWireframe fills and overlays edges.
	RenderModeFilledWireframe
	// RenderModeFilledWireframeVertex fills and overlays edges and
	// vertex markers.
	RenderModeFilledWireframeVertex
)

// String returns the mode name.
func (m RenderMode) String() string {
	switch m {
	case RenderModeWireframe:
		return "Wireframe"
	case RenderModeWireframeVertex:
		return "WireframeVertex"
	case RenderModeFilled:
		return "Filled"
	case RenderModeFilledWireframe:
		return "FilledWireframe"
	default:
		return "FilledWireframeVertex"
	}
}

func (m RenderMode) fills() bool {
	return m >= RenderModeFilled
}

func (m RenderMode) drawsWireframe() bool {
	return m != RenderModeFilled
}

func (m RenderMode) drawsVertices() bool {
	return m == RenderModeWireframeVertex || m == RenderModeFilledWireframeVertex
}

const vertexMarkerSize = 4

// Engine drives the per-frame pipeline. Update consumes the scene and
// produces screen-space triangle lists; Render clears the buffers and
// rasterizes them. Both run on the caller's single thread of control.
type Engine struct {
	renderer   *render.Renderer
	camera     *render.FpsCamera
	projection *render.Projection
	light      render.DirectionalLight
	clipper    render.Clipper
	rasterizer *render.Dispatcher

	scene []*models.Model
	names map[string]int

	// Per-frame scratch, reused across frames
	triangles [][]render.Triangle

	renderMode      RenderMode
	shadingMode     render.ShadingMode
	textureMode     render.TextureMode
	backfaceCulling bool
	showGrid        bool
	gridSpacing     int
	backgroundColor uint32
	baseColor       uint32
	wireColor       uint32
	globalTexture   *render.Texture
}

// NewEngine creates an engine rendering to a width x height buffer with a
// 60 degree vertical FOV, 0.1/100 clip planes, flat shading, and backface
// culling enabled.
func NewEngine(width, height int) *Engine {
	return &Engine{
		renderer:        render.NewRenderer(width, height),
		camera:          render.NewFpsCamera(math3d.Zero3()),
		projection:      render.NewProjectionDegrees(60, float64(width)/float64(height), 0.1, 100),
		light:           render.NewDirectionalLight(math3d.V3(0, -0.5, 1)),
		clipper:         render.NewClipper(),
		rasterizer:      render.NewDispatcher(render.RasterizerScanline),
		names:           make(map[string]int),
		renderMode:      RenderModeFilled,
		shadingMode:     render.ShadingFlat,
		textureMode:     render.TextureNone,
		backfaceCulling: true,
		gridSpacing:     50,
		backgroundColor: render.ColorBackground,
		baseColor:       render.ColorWhite,
		wireColor:       render.ColorGreen,
	}
}

// Renderer returns the owned renderer.
func (e *Engine) Renderer() *render.Renderer {
	return e.renderer
}

// Camera returns the camera.
func (e *Engine) Camera() *render.FpsCamera {
	return e.camera
}

// Projection returns the projection parameters.
func (e *Engine) Projection() *render.Projection {
	return e.projection
}

// Light returns the directional light.
func (e *Engine) Light() render.DirectionalLight {
	return e.light
}

// SetLight replaces the directional light.
func (e *Engine) SetLight(light render.DirectionalLight) {
	e.light = light
}

// Resize reallocates the buffers and updates the projection aspect.
func (e *Engine) Resize(width, height int) {
	e.renderer.Resize(width, height)
	e.projection.SetAspect(float64(width) / float64(height))
}

// SetRenderMode selects the draw passes.
func (e *Engine) SetRenderMode(mode RenderMode) {
	e.renderMode = mode
}

// RenderMode returns the active render mode.
func (e *Engine) RenderMode() RenderMode {
	return e.renderMode
}

// SetShadingMode selects the lighting model.
func (e *Engine) SetShadingMode(mode render.ShadingMode) {
	e.shadingMode = mode
}

// ShadingMode returns the active shading mode.
func (e *Engine) ShadingMode() render.ShadingMode {
	return e.shadingMode
}

// SetTextureMode selects how textures combine with lighting.
func (e *Engine) SetTextureMode(mode render.TextureMode) {
	e.textureMode = mode
}

// TextureMode returns the active texture mode.
func (e *Engine) TextureMode() render.TextureMode {
	return e.textureMode
}

// SetRasterizerType selects the triangle filling algorithm.
func (e *Engine) SetRasterizerType(t render.RasterizerType) {
	e.rasterizer.SetType(t)
}

// RasterizerType returns the active filling algorithm.
func (e *Engine) RasterizerType() render.RasterizerType {
	return e.rasterizer.ActiveType()
}

// SetBackfaceCulling toggles backface culling.
func (e *Engine) SetBackfaceCulling(enabled bool) {
	e.backfaceCulling = enabled
}

// BackfaceCulling reports whether backface culling is enabled.
func (e *Engine) BackfaceCulling() bool {
	return e.backfaceCulling
}

// SetShowGrid toggles the background pixel grid.
func (e *Engine) SetShowGrid(show bool) {
	e.showGrid = show
}

// ShowGrid reports whether the background grid is drawn.
func (e *Engine) ShowGrid() bool {
	return e.showGrid
}

// SetBackgroundColor sets the clear color.
func (e *Engine) SetBackgroundColor(color uint32) {
	e.backgroundColor = color
}

// SetBaseColor sets the fill color lighting modulates.
func (e *Engine) SetBaseColor(color uint32) {
	e.baseColor = color
}

// SetGlobalTexture sets the texture used by models that own none.
func (e *Engine) SetGlobalTexture(texture *render.Texture) {
	e.globalTexture = texture
}

// AddModel appends a model to the scene and maps its name.
func (e *Engine) AddModel(model *models.Model) {
	e.names[model.Name()] = len(e.scene)
	e.scene = append(e.scene, model)
	e.triangles = append(e.triangles, nil)
}

// RemoveModel removes a model by name, shifting later models down and
// rewriting the name map. Reports whether the model existed.
func (e *Engine) RemoveModel(name string) bool {
	i, ok := e.names[name]
	if !ok {
		return false
	}
	e.scene = append(e.scene[:i], e.scene[i+1:]...)
	e.triangles = append(e.triangles[:i], e.triangles[i+1:]...)
	delete(e.names, name)
	for n, j := range e.names {
		if j > i {
			e.names[n] = j - 1
		}
	}
	return true
}

// Model returns a model by name, or nil.
func (e *Engine) Model(name string) *models.Model {
	if i, ok := e.names[name]; ok {
		return e.scene[i]
	}
	return nil
}

// Models returns the scene models in insertion order.
func (e *Engine) Models() []*models.Model {
	return e.scene
}

// Bytes exposes the rendered frame as little-endian ARGB8888 bytes.
func (e *Engine) Bytes() []byte {
	return e.renderer.Bytes()
}

// Update runs the geometry stages for every (model, mesh, face): world and
// view transforms, backface culling, lighting, projection, clip-space
// polygon clipping, fan triangulation, perspective divide and viewport
// mapping. The result is one screen-space triangle list per model,
// consumed by Render.
func (e *Engine) Update() {
	view := e.camera.ViewMatrix()
	proj := e.projection.Matrix()
	eye := e.camera.Position()

	for mi, model := range e.scene {
		tris := e.triangles[mi][:0]
		modelMatrix := model.Transform.Matrix()

		for _, mesh := range model.Meshes() {
			world := modelMatrix.Mul(mesh.Transform.Matrix())
			normalMat := normalMatrix(world)

			for _, face := range mesh.Faces {
				a := mesh.Vertices[face.V[0]]
				b := mesh.Vertices[face.V[1]]
				c := mesh.Vertices[face.V[2]]

				p0 := world.MulVec3(a.Position)
				p1 := world.MulVec3(b.Position)
				p2 := world.MulVec3(c.Position)

				if e.backfaceCulling {
					normal := p1.Sub(p0).Cross(p2.Sub(p0))
					if normal.Dot(eye.Sub(p0)) < 0 {
						continue
					}
				}

				flatColor, vertexColors := e.shadeFace(p0, p1, p2, a.Normal, b.Normal, c.Normal, normalMat)

				v0 := view.MulVec3(p0)
				v1 := view.MulVec3(p1)
				v2 := view.MulVec3(p2)

				poly := render.PolygonFromTriangle(
					render.ClipVertex{Position: proj.MulVec4(math3d.V4FromV3(v0, 1)), Texcoord: a.UV, Color: vertexColors[0]},
					render.ClipVertex{Position: proj.MulVec4(math3d.V4FromV3(v1, 1)), Texcoord: b.UV, Color: vertexColors[1]},
					render.ClipVertex{Position: proj.MulVec4(math3d.V4FromV3(v2, 1)), Texcoord: c.UV, Color: vertexColors[2]},
				)
				poly = e.clipper.ClipPolygon(poly)
				if poly.IsEmpty() {
					continue
				}

				for i := range poly.TriangleCount() {
					cv0, cv1, cv2 := poly.Triangle(i)
					if tri, ok := e.screenTriangle(cv0, cv1, cv2, flatColor); ok {
						tris = append(tris, tri)
					}
				}
			}
		}

		e.triangles[mi] = tris
	}
}

// shadeFace computes the flat color and the three vertex colors for a face
// with world-space positions p0..p2 and local-space normals n0..n2.
// When texturing modulates, lighting applies to a white base so the
// texture carries the surface color.
func (e *Engine) shadeFace(p0, p1, p2, n0, n1, n2 math3d.Vec3, normalMat math3d.Mat4) (uint32, [3]uint32) {
	base := e.baseColor
	if e.textureMode == render.TextureModulate {
		base = render.ColorWhite
	}

	switch e.shadingMode {
	case render.ShadingFlat:
		normal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		lit := render.Modulate(base, e.lightIntensity(normal))
		return lit, [3]uint32{lit, lit, lit}

	case render.ShadingGouraud:
		var colors [3]uint32
		for i, n := range [3]math3d.Vec3{n0, n1, n2} {
			worldNormal := normalMat.MulVec3Dir(n).Normalize()
			colors[i] = render.Modulate(base, e.lightIntensity(worldNormal))
		}
		return base, colors

	default:
		return base, [3]uint32{base, base, base}
	}
}

// lightIntensity combines the Lambertian term with the ambient floor,
// clamped to [0, 1].
func (e *Engine) lightIntensity(normal math3d.Vec3) float64 {
	intensity := e.light.DiffuseStrength*e.light.Intensity(normal) + e.light.AmbientIntensity
	if intensity > 1 {
		intensity = 1
	}
	if intensity < 0 {
		intensity = 0
	}
	return intensity
}

// screenTriangle performs the perspective divide and viewport mapping for
// one clipped triangle. The clip-space w of each vertex lands in the z
// slot of the screen point for depth testing and perspective-correct
// interpolation. Vertices with w <= 0 should not survive clipping; such
// triangles are dropped defensively.
func (e *Engine) screenTriangle(v0, v1, v2 render.ClipVertex, flatColor uint32) (render.Triangle, bool) {
	width := float64(e.renderer.Width())
	height := float64(e.renderer.Height())

	var tri render.Triangle
	avgDepth := 0.0

	for i, cv := range [3]render.ClipVertex{v0, v1, v2} {
		w := cv.Position.W
		if w <= 0 {
			return render.Triangle{}, false
		}

		ndcX := cv.Position.X / w
		ndcY := cv.Position.Y / w

		tri.Points[i] = math3d.V3(
			(ndcX+1)/2*width,
			(1-ndcY)/2*height,
			w,
		)
		tri.Texcoords[i] = cv.Texcoord
		tri.VertexColors[i] = cv.Color
		avgDepth += w
	}

	tri.Color = flatColor
	tri.ShadingMode = e.shadingMode
	tri.TextureMode = e.textureMode
	tri.AvgDepth = avgDepth / 3
	return tri, true
}

// Render clears the color and depth buffers, optionally draws the grid,
// fills every model's triangle list through the selected rasterizer, and
// finally draws the wireframe and vertex overlays.
func (e *Engine) Render() {
	e.renderer.Clear(e.backgroundColor)
	e.renderer.ClearDepth()

	if e.showGrid {
		e.renderer.DrawGrid(e.gridSpacing, render.ColorGrid)
	}

	fb := e.renderer.Framebuffer()

	if e.renderMode.fills() {
		for mi, model := range e.scene {
			texture := model.Texture()
			if texture == nil {
				texture = e.globalTexture
			}
			tris := e.triangles[mi]
			for i := range tris {
				e.rasterizer.FillTriangle(&tris[i], fb, tris[i].Color, texture)
			}
		}
	}

	if e.renderMode.drawsWireframe() {
		for mi := range e.scene {
			tris := e.triangles[mi]
			for i := range tris {
				e.renderer.DrawTriangleWireframe(&tris[i], e.wireColor)
			}
		}
	}

	if e.renderMode.drawsVertices() {
		for mi := range e.scene {
			tris := e.triangles[mi]
			for i := range tris {
				e.renderer.DrawVertexMarkers(&tris[i], vertexMarkerSize, render.ColorYellow)
			}
		}
	}
}

// normalMatrix derives the matrix for transforming normals from a world
// matrix: inverse transpose of the rotation+scale part, identity when
// singular.
func normalMatrix(world math3d.Mat4) math3d.Mat4 {
	rotScale := world
	rotScale.SetTranslation(math3d.Zero3())

	inv, ok := rotScale.Inverse()
	if !ok {
		return math3d.Identity()
	}
	return inv.Transpose()
}
