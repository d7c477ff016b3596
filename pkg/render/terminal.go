package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalSize returns the framebuffer size that fills a terminal of
// cols x rows cells. Each cell shows two vertically stacked pixels.
func TerminalSize(cols, rows int) (width, height int) {
	return max(cols, 1), max(rows, 1) * 2
}

// Draw blits the framebuffer into area using upper half blocks: the
// foreground is the top pixel and the background the bottom one.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= fb.Height {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.RGBAAt(x, topY)),
					Bg: cellColor(fb.RGBAAt(x, topY+1)),
				},
			})
		}
	}
}

// DrawText writes a single line of text starting at cell (col, row),
// clipped to the screen bounds.
func DrawText(scr uv.Screen, col, row int, text string, fg, bg color.RGBA) {
	bounds := scr.Bounds()
	if row < bounds.Min.Y || row >= bounds.Max.Y {
		return
	}
	for _, r := range text {
		if col >= bounds.Max.X {
			return
		}
		if col >= bounds.Min.X {
			scr.SetCell(col, row, &uv.Cell{
				Content: string(r),
				Width:   1,
				Style:   uv.Style{Fg: cellColor(fg), Bg: cellColor(bg)},
			})
		}
		col++
	}
}

// cellColor maps transparent pixels to the terminal default.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
