// rusterize - CPU software rasterizer terminal demo
// View OBJ and GLB files rendered entirely on the CPU.
//
// Controls:
//
//	Mouse drag  - Spin the model (yaw/pitch)
//	W/S/A/D     - Move forward/back and strafe
//	Space/Z     - Move up/down
//	Q/E         - Roll left/right
//	1-5         - Render mode (wire, wire+verts, fill, fill+wire, fill+wire+verts)
//	C           - Toggle backface culling
//	G           - Toggle background grid
//	R           - Toggle rasterizer (scanline / edge function)
//	F           - Cycle shading (none / flat / Gouraud)
//	T           - Cycle texture mode (none / replace / modulate)
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/BeyondBelief96/rusterize/pkg/engine"
	"github.com/BeyondBelief96/rusterize/pkg/math3d"
	"github.com/BeyondBelief96/rusterize/pkg/models"
	"github.com/BeyondBelief96/rusterize/pkg/render"
)

var (
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG)")
	targetFPS   = flag.Int("fps", 60, "Target FPS")
	bgColor     = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	rasterizer  = flag.String("rasterizer", "scanline", "Rasterizer: scanline or edge")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rusterize - CPU software rasterizer demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rusterize [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Spin the model\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Move\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll\n")
		fmt.Fprintf(os.Stderr, "  1-5         - Render mode\n")
		fmt.Fprintf(os.Stderr, "  C/G/R/F/T   - Culling, grid, rasterizer, shading, texture\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// spinAxis decays a rotation velocity toward zero with a critically damped
// spring, so mouse impulses feel physical.
type spinAxis struct {
	position float64
	velocity float64
	spring   harmonica.Spring
	accel    float64
}

func newSpinAxis(fps int) spinAxis {
	return spinAxis{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *spinAxis) update() {
	a.position += a.velocity
	a.velocity, a.accel = a.spring.Update(a.velocity, a.accel, 0)
}

func run(modelPath string) error {
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)

	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	// Enable any-event mouse tracking with SGR extended coordinates
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	presenter := NewTerminalRenderer(term, cols, rows)
	fbWidth, fbHeight := presenter.FramebufferSize()

	eng := engine.NewEngine(fbWidth, fbHeight)
	eng.SetBackgroundColor(render.PackRGB(bgR, bgG, bgB))
	eng.SetShadingMode(render.ShadingGouraud)
	if strings.HasPrefix(strings.ToLower(*rasterizer), "edge") {
		eng.SetRasterizerType(render.RasterizerEdgeFunction)
	}

	eng.Camera().SetPosition(math3d.V3(0, 0, -5))
	eng.Camera().LookAt(math3d.Zero3())

	var texture *render.Texture
	if *texturePath != "" {
		texture, err = render.LoadTexture(*texturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load texture: %v\n", err)
		}
	}

	model, embedded, err := loadModel(modelPath)
	if err != nil {
		return err
	}
	if texture == nil && embedded != nil {
		texture = embedded
	}
	if texture == nil {
		texture = render.NewCheckerTexture(64, 64, 8,
			render.PackRGB(200, 200, 200), render.PackRGB(100, 100, 100))
	}
	model.SetTexture(texture)
	normalizeModel(model)
	eng.AddModel(model)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	var input engine.InputState
	controller := engine.NewCameraController()

	spinYaw := newSpinAxis(*targetFPS)
	spinPitch := newSpinAxis(*targetFPS)

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				presenter = NewTerminalRenderer(term, cols, rows)
				fbWidth, fbHeight = presenter.FramebufferSize()
				eng.Resize(fbWidth, fbHeight)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					input.Forward = true
				case ev.MatchString("s", "down"):
					input.Back = true
				case ev.MatchString("a", "left"):
					input.Left = true
				case ev.MatchString("d", "right"):
					input.Right = true
				case ev.MatchString("space"):
					input.Up = true
				case ev.MatchString("z"):
					input.Down = true
				case ev.MatchString("q"):
					input.RollLeft = true
				case ev.MatchString("e"):
					input.RollRight = true
				case ev.MatchString("1"):
					eng.SetRenderMode(engine.RenderModeWireframe)
				case ev.MatchString("2"):
					eng.SetRenderMode(engine.RenderModeWireframeVertex)
				case ev.MatchString("3"):
					eng.SetRenderMode(engine.RenderModeFilled)
				case ev.MatchString("4"):
					eng.SetRenderMode(engine.RenderModeFilledWireframe)
				case ev.MatchString("5"):
					eng.SetRenderMode(engine.RenderModeFilledWireframeVertex)
				case ev.MatchString("c"):
					eng.SetBackfaceCulling(!eng.BackfaceCulling())
				case ev.MatchString("g"):
					eng.SetShowGrid(!eng.ShowGrid())
				case ev.MatchString("r"):
					if eng.RasterizerType() == render.RasterizerScanline {
						eng.SetRasterizerType(render.RasterizerEdgeFunction)
					} else {
						eng.SetRasterizerType(render.RasterizerScanline)
					}
				case ev.MatchString("f"):
					eng.SetShadingMode((eng.ShadingMode() + 1) % 3)
				case ev.MatchString("t"):
					eng.SetTextureMode((eng.TextureMode() + 1) % 3)
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"):
					input.Forward = false
				case ev.MatchString("s"), ev.MatchString("down"):
					input.Back = false
				case ev.MatchString("a"), ev.MatchString("left"):
					input.Left = false
				case ev.MatchString("d"), ev.MatchString("right"):
					input.Right = false
				case ev.MatchString("space"):
					input.Up = false
				case ev.MatchString("z"):
					input.Down = false
				case ev.MatchString("q"):
					input.RollLeft = false
				case ev.MatchString("e"):
					input.RollRight = false
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					spinYaw.velocity += float64(ev.X-lastMouseX) * 0.01
					spinPitch.velocity += float64(ev.Y-lastMouseY) * 0.01
					lastMouseX, lastMouseY = ev.X, ev.Y
				}
			}
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		controller.Apply(eng.Camera(), input, dt)

		spinYaw.update()
		spinPitch.update()
		model.Transform.SetRotation(math3d.V3(spinPitch.position, spinYaw.position, 0))

		eng.Update()
		eng.Render()

		presenter.Render(eng.Renderer())
		if err := presenter.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// loadModel loads the model at path by extension, or the built-in cube
// when path is empty. The second return is an embedded texture, if any.
func loadModel(path string) (*models.Model, *render.Texture, error) {
	if path == "" {
		model := models.NewModel("cube")
		model.AddMesh(models.NewCubeMesh())
		return model, nil, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		model, err := models.ModelFromOBJ(filepath.Base(path), path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		return model, nil, nil

	case ".glb", ".gltf":
		meshes, embedded, err := models.LoadGLBWithTexture(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		model := models.NewModel(filepath.Base(path))
		for _, mesh := range meshes {
			model.AddMesh(mesh)
		}
		var texture *render.Texture
		if embedded != nil {
			texture = render.FromImage(embedded)
		}
		return model, texture, nil

	default:
		return nil, nil, fmt.Errorf("unsupported format %q (use .obj or .glb)", filepath.Ext(path))
	}
}

// normalizeModel centers the model at the origin and scales its largest
// dimension to 2 world units so any input fits the default camera.
func normalizeModel(model *models.Model) {
	min := math3d.V3(math.Inf(1), math.Inf(1), math.Inf(1))
	max := math3d.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))

	for _, mesh := range model.Meshes() {
		mesh.CalculateBounds()
		min = min.Min(mesh.BoundsMin)
		max = max.Max(mesh.BoundsMax)
	}

	center := min.Add(max).Scale(0.5)
	size := max.Sub(min)
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))

	// Center through the mesh local transforms so the model transform
	// rotates around the geometric center
	for _, mesh := range model.Meshes() {
		mesh.Transform.SetPosition(center.Negate())
	}
	if maxDim > 0 {
		model.Transform.SetScaleUniform(2 / maxDim)
	}
}
