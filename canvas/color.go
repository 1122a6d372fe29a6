package canvas

import (
	"fmt"
	"image"
	"math"
	"strings"
	"unicode"
)

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

var (
	Background = Color{R: 0x3A, G: 0x22, B: 0xBD}
	Foreground = Color{R: 0xFF, G: 0xFF, B: 0xFF}
)

func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) bgra() [bytesPerPixel]byte {
	return [bytesPerPixel]byte{offB: c.B, offG: c.G, offR: c.R, offA: 0xFF}
}

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
// The origin may lie off the canvas; W or H <= 0 means empty.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Rectangle converts r to an image.Rectangle. Far corners that would
// overflow int saturate at math.MaxInt.
func (r Rect) Rectangle() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rectangle{
		Min: image.Pt(r.X, r.Y),
		Max: image.Pt(addSat(r.X, r.W), addSat(r.Y, r.H)),
	}
}

// addSat returns o+n for n > 0, clamped to math.MaxInt.
func addSat(o, n int) int {
	if o > math.MaxInt-n {
		return math.MaxInt
	}
	return o + n
}

// span clips the interval [o, o+n) to [0, limit) without computing o+n
// when that could overflow. An empty result has lo >= hi.
func span(o, n, limit int) (lo, hi int) {
	if n <= 0 || o >= limit {
		return 0, 0
	}
	if o < 0 {
		// o+n cannot overflow when o is negative and n positive
		return 0, min(o+n, limit)
	}
	return o, o + min(n, limit-o)
}

// ParseHex reads a color written as #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
// Alpha digits are accepted for symmetry with other tools but dropped,
// since canvas colors are always opaque.
func ParseHex(s string) (Color, error) {
	var c Color
	var a uint8
	var n int
	var err error
	if !strings.HasPrefix(s, "#") || strings.IndexFunc(s[1:], notHexDigit) >= 0 {
		return Color{}, fmt.Errorf("invalid color %q, expected '#' followed by hex digits", s)
	}

	switch len(s) {
	case 4:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 5:
		n, err = fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &a)
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 7:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
	case 9:
		n, err = fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &a)
	default:
		return Color{}, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	if err != nil {
		return Color{}, fmt.Errorf("could not read color %q: %w", s, err)
	} else if n < 3 {
		return Color{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
	}
	return c, nil
}

func notHexDigit(r rune) bool {
	return !unicode.Is(unicode.ASCII_Hex_Digit, r)
}
