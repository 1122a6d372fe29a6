package canvas

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"rawcanvas/fileop"
)

// swapRB copies BGRA pixels from src into dst as RGBA. Both slices must
// have the same length.
func swapRB(dst, src []byte) {
	for i := 0; i+bytesPerPixel <= len(src); i += bytesPerPixel {
		dst[i+0] = src[i+offR]
		dst[i+1] = src[i+offG]
		dst[i+2] = src[i+offB]
		dst[i+3] = src[i+offA]
	}
}

// RGBA returns a copy of the canvas as an *image.RGBA. Its Pix holds
// exactly the bytes DumpRGBA writes.
func (c *Canvas) RGBA() *image.RGBA {
	img := image.NewRGBA(c.Bounds())
	if !c.Released() {
		swapRB(img.Pix, c.pix)
	}
	return img
}

// WriteRGBA streams the canvas to w as raw RGBA rows, top row first,
// without header or padding.
func (c *Canvas) WriteRGBA(w io.Writer) (int64, error) {
	if c.Released() {
		return 0, ErrReleased
	}

	stride := c.stride()
	row := make([]byte, stride)
	var count int64
	for y := range c.height {
		swapRB(row, c.pix[y*stride:(y+1)*stride])
		n, err := w.Write(row)
		count += int64(n)
		if err != nil {
			return count, fmt.Errorf("could not write row %d: %w", y, err)
		} else if n != len(row) {
			return count, fmt.Errorf("wrote only %d/%d bytes of row %d", n, len(row), y)
		}
	}

	return count, nil
}

// DumpRGBA writes the canvas to pathname as raw RGBA bytes, replacing any
// existing file. On failure the destination is left untouched.
func (c *Canvas) DumpRGBA(pathname string) error {
	if c.Released() {
		return ErrReleased
	}

	return fileop.WriteAtomic(pathname, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if _, err := c.WriteRGBA(bw); err != nil {
			return err
		}
		return bw.Flush()
	})
}
