// Package remap implements the palette re-mapper: reordering a quantized
// palette so non-opaque entries occupy a leading block and
// opaque entries trail (letting the PNG encoder omit opaque entries from
// the tRNS chunk), and un-premultiplying every entry's color channels.
package remap

import (
	"fmt"

	"github.com/tilecodec/pngcore/errs"
	"github.com/tilecodec/pngcore/internal/colormath"
)

// RGB is one un-premultiplied 8-bit color, ready for a PLTE chunk entry.
type RGB struct {
	R, G, B uint8
}

// Result is the remapper's full output.
type Result struct {
	RGB   []RGB   // length len(source palette), new PLTE order
	Alpha []uint8 // length NumA, tRNS values for the non-opaque leading block
	Remap []int   // old palette index -> new palette index
	NumA  int     // count of non-opaque entries, i.e. len(Alpha)
}

// Remap reorders a palette of premultiplied colors (at resolution maxval,
// which may be less than 255 if the quantizer's depth-reduction loop ran)
// so indices [0, NumA) are non-opaque and [NumA, len(palette)) are opaque.
//
// Within each group the relative order is unspecified — this
// implementation places non-opaque entries in their original relative
// order and opaque entries in reverse, but callers (and tests) must not
// depend on that.
func Remap(palette []colormath.Color, maxval int) (*Result, error) {
	k := len(palette)
	remapIdx := make([]int, k)

	bot, top := 0, k-1
	for i, c := range palette {
		if int(c.A) == maxval {
			remapIdx[i] = top
			top--
		} else {
			remapIdx[i] = bot
			bot++
		}
	}
	if bot != top+1 {
		return nil, fmt.Errorf("remap: two-pointer placement mismatch (bot=%d, top=%d): %w", bot, top, errs.ErrQuantizerInvariant)
	}
	numA := bot

	rgbOut := make([]RGB, k)
	alphaOut := make([]uint8, numA)
	for i, c := range palette {
		newIdx := remapIdx[i]
		a := colormath.Rescale(c.A, maxval, 255)
		r8 := colormath.Rescale(c.R, maxval, 255)
		g8 := colormath.Rescale(c.G, maxval, 255)
		b8 := colormath.Rescale(c.B, maxval, 255)

		var r, g, b uint8
		switch {
		case a == 255:
			r, g, b = r8, g8, b8
		case a == 0:
			r, g, b = 0, 0, 0
		default:
			r = colormath.Unpremul(r8, a)
			g = colormath.Unpremul(g8, a)
			b = colormath.Unpremul(b8, a)
		}

		rgbOut[newIdx] = RGB{R: r, G: g, B: b}
		if newIdx < numA {
			alphaOut[newIdx] = a
		}
	}

	return &Result{RGB: rgbOut, Alpha: alphaOut, Remap: remapIdx, NumA: numA}, nil
}

// ApplyRemap rewrites every index in place according to remap (old index
// -> new index), as produced by Remap.
func ApplyRemap(indices []byte, remap []int) {
	for i, idx := range indices {
		indices[i] = byte(remap[int(idx)])
	}
}
