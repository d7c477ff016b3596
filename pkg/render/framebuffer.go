// Package render rasterizes shaded meshes into a depth-tested
// framebuffer and blits it to the terminal.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Framebuffer holds one frame of color and depth. Both buffers are
// row-major and Width*Height long.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []color.RGBA
	Depth  []float64

	// Background is the color Clear resets pixels to.
	Background color.RGBA
}

var _ draw.Image = (*Framebuffer)(nil)

// NewFramebuffer creates a cleared framebuffer with a black background.
// Negative sizes are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	fb := &Framebuffer{
		Width:      width,
		Height:     height,
		Pixels:     make([]color.RGBA, width*height),
		Depth:      make([]float64, width*height),
		Background: color.RGBA{A: 255},
	}
	fb.Clear()
	return fb
}

// SetBackground changes the clear color. It takes effect on the next
// Clear.
func (fb *Framebuffer) SetBackground(c color.RGBA) {
	fb.Background = c
}

// Clear resets every pixel to the background color and every depth
// cell to +Inf. Call it before each frame.
func (fb *Framebuffer) Clear() {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	// Copy-doubling fill.
	fb.Pixels[0] = fb.Background
	fb.Depth[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
		copy(fb.Depth[i:], fb.Depth[:i])
	}
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// Point writes c at (x, y) if depth is strictly less than the stored
// depth, and reports whether it did. Ties keep the earlier fragment.
// Out-of-bounds writes are ignored.
func (fb *Framebuffer) Point(x, y int, c color.RGBA, depth float64) bool {
	if !fb.inBounds(x, y) {
		return false
	}
	i := y*fb.Width + x
	if !(depth < fb.Depth[i]) {
		return false
	}
	fb.Pixels[i] = c
	fb.Depth[i] = depth
	return true
}

// RGBAAt returns the pixel at (x, y), or transparent black out of
// bounds.
func (fb *Framebuffer) RGBAAt(x, y int) color.RGBA {
	if !fb.inBounds(x, y) {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DepthAt returns the stored depth at (x, y), or +Inf out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if !fb.inBounds(x, y) {
		return math.Inf(1)
	}
	return fb.Depth[y*fb.Width+x]
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.Width, fb.Height) }

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color { return fb.RGBAAt(x, y) }

// Set implements draw.Image. It writes the color without touching the
// depth buffer.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.Pixels[y*fb.Width+x] = color.RGBAModel.Convert(c).(color.RGBA)
}

// Packed returns the pixels as row-major 0xRRGGBB words, the layout
// most window surfaces accept.
func (fb *Framebuffer) Packed() []uint32 {
	out := make([]uint32, len(fb.Pixels))
	for i, p := range fb.Pixels {
		out[i] = uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
	}
	return out
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. It ignores depth.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if fb.inBounds(x0, y0) {
			fb.Pixels[y0*fb.Width+x0] = c
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawLabel renders text with its baseline at (x, y) in the 7x13
// bitmap font. Labels are drawn over the frame and ignore depth.
func (fb *Framebuffer) DrawLabel(x, y int, text string, c color.RGBA) {
	d := font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage copies the framebuffer into a standard image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG writes the framebuffer to path as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, fb.ToImage()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
