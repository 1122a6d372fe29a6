// Package export writes a canvas to disk, either as the raw RGBA dump or
// encoded in one of the common image formats.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"rawcanvas/canvas"
	"rawcanvas/fileop"
)

type Format int

const (
	Auto Format = iota
	Raw
	PNG
	BMP
	TIFF
	GIF
	JPEG
)

var formatNames = map[Format]string{
	Auto: "auto",
	Raw:  "raw",
	PNG:  "png",
	BMP:  "bmp",
	TIFF: "tiff",
	GIF:  "gif",
	JPEG: "jpeg",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(s)
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return Auto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromExt picks a format from a file extension, with or without the
// leading dot. Raw dumps use .data, .raw or .rgba.
func FormatFromExt(ext string) (Format, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "data", "raw", "rgba":
		return Raw, nil
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "gif":
		return GIF, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return Auto, fmt.Errorf("%w: extension %q not recognized", ErrUnknownFormat, ext)
}

// Resolve turns Auto into the format implied by path.
func Resolve(f Format, path string) (Format, error) {
	if f != Auto {
		return f, nil
	}
	return FormatFromExt(filepath.Ext(path))
}

// Save writes c to path. Raw output is the bit-exact RGBA dump and ignores
// scale; every other format is upscaled by scale with nearest-neighbour
// sampling before encoding.
func Save(c *canvas.Canvas, path string, f Format, scale int) error {
	f, err := Resolve(f, path)
	if err != nil {
		return err
	}
	if f == Raw {
		return c.DumpRGBA(path)
	}
	if c.Released() {
		return canvas.ErrReleased
	}

	img := Scale(c.RGBA(), scale)
	return fileop.WriteAtomic(path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if err := Encode(bw, img, f); err != nil {
			return err
		}
		return bw.Flush()
	})
}

// Scale returns img enlarged by an integer factor. Factors below 2 return
// img unchanged.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor < 2 {
		return img
	}
	sr := img.Bounds()
	dest := image.NewRGBA(image.Rect(0, 0, sr.Dx()*factor, sr.Dy()*factor))
	draw.NearestNeighbor.Scale(dest, dest.Bounds(), img, sr, draw.Src, nil)
	return dest
}

func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case BMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case TIFF:
		if err := tiff.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	case GIF:
		if err := gif.Encode(w, img, nil); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case JPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: 100}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnknownFormat, f)
	}
	return nil
}
