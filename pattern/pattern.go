// Package pattern draws small cell patterns, such as the Game of Life
// glider, onto a canvas.
package pattern

import (
	"image"

	"rawcanvas/canvas"
)

// Glider returns the live cells of a glider relative to its top-left
// corner. Each call returns a fresh slice.
func Glider() []image.Point {
	return []image.Point{
		{X: 1, Y: 0},
		{X: 0, Y: 1},
		{X: 0, Y: 2},
		{X: 1, Y: 2},
		{X: 2, Y: 2},
	}
}

// Draw paints each cell as a size x size square at origin + cell*size.
// Cells falling off the canvas are clipped, and cells whose position
// overflows int are skipped.
func Draw(c *canvas.Canvas, cells []image.Point, origin image.Point, size int, col canvas.Color) {
	if size < 1 {
		return
	}
	for _, cell := range cells {
		p, ok := cellOrigin(origin, cell, size)
		if !ok {
			continue
		}
		c.DrawRect(canvas.Rect{X: p.X, Y: p.Y, W: size, H: size}, col)
	}
}

// Bounds returns the smallest rectangle covering cells drawn with Draw.
// Cells skipped by Draw are left out.
func Bounds(cells []image.Point, origin image.Point, size int) image.Rectangle {
	var r image.Rectangle
	for _, cell := range cells {
		p, ok := cellOrigin(origin, cell, size)
		if !ok {
			continue
		}
		r = r.Union(canvas.Rect{X: p.X, Y: p.Y, W: size, H: size}.Rectangle())
	}
	return r
}

// cellOrigin returns origin + cell*size, or false when that is not
// representable as an int.
func cellOrigin(origin, cell image.Point, size int) (image.Point, bool) {
	x, okX := mulAdd(origin.X, cell.X, size)
	y, okY := mulAdd(origin.Y, cell.Y, size)
	return image.Pt(x, y), okX && okY
}

// mulAdd returns o + k*size for size >= 1, reporting overflow.
func mulAdd(o, k, size int) (int, bool) {
	p := k * size
	if k != 0 && p/k != size {
		return 0, false
	}
	sum := o + p
	if (p > 0 && sum < o) || (p < 0 && sum > o) {
		return 0, false
	}
	return sum, true
}
