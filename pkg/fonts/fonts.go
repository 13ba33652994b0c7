// Package fonts provides the font face used for text measurement and raster
// output.
//
// Layout needs text extents before anything is drawn, and the SVG and PNG
// sinks must agree on them. Both therefore measure against the same fixed
// bitmap face from golang.org/x/image/font/basicfont, scaled linearly to the
// requested point size.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontFamily is the CSS font-family used in SVG output. It is a monospace
// stack so browser rendering stays close to the measured extents.
const FontFamily = `'DejaVu Sans Mono', 'Menlo', 'Consolas', monospace`

// Face returns the bitmap face used by the raster sink.
func Face() font.Face { return basicfont.Face7x13 }

var (
	advance     float64
	advanceOnce sync.Once
)

// NativeSize is the pixel height the bitmap face is designed for.
const NativeSize = 13.0

func glyphAdvance() float64 {
	advanceOnce.Do(func() {
		adv, ok := basicfont.Face7x13.GlyphAdvance('0')
		if !ok {
			adv = fixed.I(basicfont.Face7x13.Advance)
		}
		advance = float64(adv) / 64
	})
	return advance
}

// Measure returns the width and height of s set at the given size.
func Measure(s string, size float64) (w, h float64) {
	n := 0
	for range s {
		n++
	}
	return float64(n) * glyphAdvance() * size / NativeSize, size
}
