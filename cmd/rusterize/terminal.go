package main

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/BeyondBelief96/rusterize/pkg/render"
)

// TerminalRenderer presents the engine's framebuffer as terminal cells.
// Each terminal row shows two framebuffer rows using the upper half block
// character, with fg = top pixel and bg = bottom pixel, doubling the
// vertical resolution.
type TerminalRenderer struct {
	term *uv.Terminal
	cols int
	rows int
}

// NewTerminalRenderer creates a presenter for a terminal of cols x rows
// cells.
func NewTerminalRenderer(term *uv.Terminal, cols, rows int) *TerminalRenderer {
	return &TerminalRenderer{term: term, cols: cols, rows: rows}
}

// FramebufferSize returns the pixel dimensions the engine should render
// at: one pixel per column, two per row.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.cols, t.rows * 2
}

// Render converts the renderer's pixels to cells on the terminal screen.
func (t *TerminalRenderer) Render(r *render.Renderer) {
	for row := 0; row < t.rows; row++ {
		topY := row * 2
		botY := topY + 1

		for col := 0; col < t.cols && col < r.Width(); col++ {
			top, _ := r.Pixel(col, topY)
			bot, _ := r.Pixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: packedToColor(top),
					Bg: packedToColor(bot),
				},
			}
			t.term.SetCell(col, row, cell)
		}
	}
}

// Flush pushes the prepared cells to the terminal.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}

// packedToColor converts a packed ARGB color to Go's color.Color.
func packedToColor(c uint32) color.Color {
	if c>>24 == 0 {
		return nil // transparent = no color
	}
	return color.RGBA{
		R: uint8(c >> 16),
		G: uint8(c >> 8),
		B: uint8(c),
		A: uint8(c >> 24),
	}
}
