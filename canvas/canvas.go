// Package canvas implements a fixed-size in-memory pixel buffer stored in
// BGRA byte order, with flat fills, clipped rectangle drawing and raw RGBA
// export.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"rawcanvas/parallel"
)

const bytesPerPixel = 4

// offsets of each channel inside a stored pixel
const (
	offB = iota
	offG
	offR
	offA
)

var (
	ErrOutOfMemory = errors.New("out of memory")
	ErrInvalidSize = errors.New("invalid canvas size")
	ErrReleased    = errors.New("canvas released")
)

// MaxBytes caps the size of a single canvas buffer. Requests above it fail
// with ErrOutOfMemory instead of taking the process down.
var MaxBytes = 1 << 30

var _ draw.Image = &Canvas{}

// Canvas owns a width*height*4 byte buffer. The pixel at (x, y) starts at
// pix[(y*width+x)*4] and is laid out as blue, green, red, alpha.
//
// A Canvas is not safe for concurrent use; FillParallel partitions rows
// internally and returns only after all of them are written.
type Canvas struct {
	width, height int
	pix           []byte
}

// New allocates a canvas of the given size. The buffer starts zeroed.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if width > MaxBytes/bytesPerPixel/height {
		return nil, fmt.Errorf("%w: %dx%d canvas exceeds %d bytes", ErrOutOfMemory, width, height, MaxBytes)
	}

	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*bytesPerPixel),
	}, nil
}

// Release drops the pixel buffer. Calling it more than once is harmless.
// Drawing on a released canvas does nothing.
func (c *Canvas) Release() {
	if c == nil {
		return
	}
	c.pix = nil
}

func (c *Canvas) Released() bool {
	return c == nil || c.pix == nil
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Pix returns the live BGRA buffer, or nil once released.
func (c *Canvas) Pix() []byte {
	return c.pix
}

func (c *Canvas) stride() int {
	return c.width * bytesPerPixel
}

// Fill paints every pixel with col at full opacity.
func (c *Canvas) Fill(col Color) {
	if c.Released() {
		return
	}
	fillSpan(c.pix, col.bgra())
}

// FillParallel is Fill with rows split across the pool's workers.
func (c *Canvas) FillParallel(pool *parallel.Pool, col Color) {
	if c.Released() {
		return
	}
	px := col.bgra()
	stride := c.stride()
	pool.Rows(c.height, func(y0, y1 int) {
		fillSpan(c.pix[y0*stride:y1*stride], px)
	})
}

// DrawRect paints the part of r that lies inside the canvas. Anything
// outside is clipped away; an empty rectangle draws nothing.
func (c *Canvas) DrawRect(r Rect, col Color) {
	if c.Released() {
		return
	}
	x0, x1 := span(r.X, r.W, c.width)
	y0, y1 := span(r.Y, r.H, c.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	px := col.bgra()
	stride := c.stride()
	row := (x1 - x0) * bytesPerPixel
	for y := y0; y < y1; y++ {
		i := y*stride + x0*bytesPerPixel
		fillSpan(c.pix[i:i+row], px)
	}
}

func (c *Canvas) ColorModel() color.Model {
	return color.RGBAModel
}

func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

// At returns the pixel at (x, y), or transparent black outside the canvas.
func (c *Canvas) At(x, y int) color.Color {
	if c.Released() || !image.Pt(x, y).In(c.Bounds()) {
		return color.RGBA{}
	}
	i := c.offset(x, y)
	return color.RGBA{
		R: c.pix[i+offR],
		G: c.pix[i+offG],
		B: c.pix[i+offB],
		A: c.pix[i+offA],
	}
}

// Set stores col at (x, y), converted to premultiplied RGBA. Points outside
// the canvas are ignored.
func (c *Canvas) Set(x, y int, col color.Color) {
	if c.Released() || !image.Pt(x, y).In(c.Bounds()) {
		return
	}
	rgba := color.RGBAModel.Convert(col).(color.RGBA)
	i := c.offset(x, y)
	c.pix[i+offB] = rgba.B
	c.pix[i+offG] = rgba.G
	c.pix[i+offR] = rgba.R
	c.pix[i+offA] = rgba.A
}

func (c *Canvas) offset(x, y int) int {
	return y*c.stride() + x*bytesPerPixel
}

// fillSpan repeats px over buf, which must hold a whole number of pixels.
func fillSpan(buf []byte, px [bytesPerPixel]byte) {
	if len(buf) == 0 {
		return
	}
	n := copy(buf, px[:])
	for n < len(buf) {
		n += copy(buf[n:], buf[:n])
	}
}
