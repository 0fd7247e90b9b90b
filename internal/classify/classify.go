// Package classify maps each pixel of an image to its nearest palette
// index in 4-D Euclidean distance, memoized by exact pixel color.
package classify

import (
	"github.com/tilecodec/pngcore/internal/colormath"
	"github.com/tilecodec/pngcore/internal/histogram"
)

const noNext = -1

// maxMemoEntries bounds the memoization table: once the table would grow
// past this size, memoization is disabled for the rest of the
// classification pass. Correctness is unaffected — every pixel is still
// classified by linear scan — only the amortization benefit is lost.
const maxMemoEntries = 1 << 20

type memoNode struct {
	color colormath.Color
	index int
	next  int32
}

// Classifier holds one target palette and the memoization table built up
// while classifying an image against it.
type Classifier struct {
	palette  []colormath.Color
	buckets  [histogram.HashSize]int32
	nodes    []memoNode
	disabled bool
}

// New creates a Classifier for the given palette. palette is not copied;
// the caller must not mutate it while the Classifier is in use.
func New(palette []colormath.Color) *Classifier {
	c := &Classifier{palette: palette}
	for i := range c.buckets {
		c.buckets[i] = noNext
	}
	return c
}

// Classify returns the index of the palette entry nearest px in squared
// 4-D Euclidean distance over (R, G, B, A), using a memoized lookup when
// the exact color has been classified before in this pass.
func (c *Classifier) Classify(px colormath.Color) int {
	idx := histogram.HashIndex(px)
	if !c.disabled {
		for n := c.buckets[idx]; n != noNext; n = c.nodes[n].next {
			if c.nodes[n].color == px {
				return c.nodes[n].index
			}
		}
	}

	best := nearest(c.palette, px)

	if !c.disabled {
		if len(c.nodes) >= maxMemoEntries {
			c.disabled = true
		} else {
			c.nodes = append(c.nodes, memoNode{color: px, index: best, next: c.buckets[idx]})
			c.buckets[idx] = int32(len(c.nodes) - 1)
		}
	}
	return best
}

// nearest linear-scans palette and returns the index of the entry closest
// to px, breaking ties by first occurrence. Distance is accumulated in
// int64: 4*255^2 fits comfortably in 32 bits, but a 64-bit accumulator
// removes the concern outright rather than relying on that margin.
func nearest(palette []colormath.Color, px colormath.Color) int {
	best := 0
	var bestDist int64 = -1
	for i, p := range palette {
		db := int64(p.B) - int64(px.B)
		dg := int64(p.G) - int64(px.G)
		dr := int64(p.R) - int64(px.R)
		da := int64(p.A) - int64(px.A)
		d := db*db + dg*dg + dr*dr + da*da
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// ClassifyRaster classifies every pixel of a width x height raster, reading
// pixels via at(x, y), and returns a width*height byte-per-pixel index
// buffer in row-major order. It is the caller's responsibility to ensure
// len(palette) <= 256 so the returned indices fit a byte.
func ClassifyRaster(width, height int, at func(x, y int) colormath.Color, palette []colormath.Color) []byte {
	c := New(palette)
	out := make([]byte, width*height)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[i] = byte(c.Classify(at(x, y)))
			i++
		}
	}
	return out
}
