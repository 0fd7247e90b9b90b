// Package quantize implements a median-cut color quantizer: picking at
// most N representative colors from a histogram of an image's distinct
// colors, weighted by pixel frequency.
//
// Quantize is the entry point; box holds the median-cut split state.
package quantize

import (
	"sort"

	"github.com/tilecodec/pngcore/internal/colormath"
	"github.com/tilecodec/pngcore/internal/histogram"
)

// channel indexes into a Color's four fields, ordered for the tie-break
// rule: alpha is preferred over the others on a range tie, since map
// tiles are usually mostly-opaque with sparse transparency worth
// preserving precisely.
type channel int

const (
	chanA channel = iota
	chanR
	chanG
	chanB
)

// tieBreakOrder lists channels in the priority order used when two
// channels have an equal range: the first channel in this slice with the
// maximum range wins.
var tieBreakOrder = []channel{chanA, chanR, chanG, chanB}

func channelValue(c colormath.Color, ch channel) uint8 {
	switch ch {
	case chanA:
		return c.A
	case chanR:
		return c.R
	case chanG:
		return c.G
	default:
		return c.B
	}
}

// box is the median-cut splitter's internal bookkeeping: a contiguous
// slice of entries, and the total pixel count they represent.
type box struct {
	start int
	count int
	sum   int64
}

// Quantize picks at most n representative BGRA colors from entries,
// weighted by each color's pixel count. maxval bounds the resolution of
// the returned channels (the caller's depth-reduction retry loop can call
// this with maxval < 255 after rescaling the source histogram). entries is
// not mutated; Quantize operates on an internal copy.
func Quantize(entries []histogram.Entry, n int, maxval int) []colormath.Color {
	if len(entries) == 0 || n <= 0 {
		return nil
	}
	work := make([]histogram.Entry, len(entries))
	copy(work, entries)

	var total int64
	for _, e := range work {
		total += e.Count
	}

	boxes := []box{{start: 0, count: len(work), sum: total}}

	for len(boxes) < n {
		splitIdx := -1
		for i, b := range boxes {
			if b.count >= 2 {
				splitIdx = i
				break
			}
		}
		if splitIdx < 0 {
			break
		}
		b := boxes[splitIdx]
		slice := work[b.start : b.start+b.count]

		ch := widestChannel(slice)
		sort.Slice(slice, func(i, j int) bool {
			return channelValue(slice[i].Color, ch) < channelValue(slice[j].Color, ch)
		})

		splitAt := splitPoint(slice, b.sum)

		left := box{start: b.start, count: splitAt, sum: weightedSum(slice[:splitAt])}
		right := box{start: b.start + splitAt, count: b.count - splitAt, sum: b.sum - left.sum}

		boxes[splitIdx] = left
		boxes = append(boxes, right)

		sort.Slice(boxes, func(i, j int) bool { return boxes[i].sum > boxes[j].sum })
	}

	out := make([]colormath.Color, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, representative(work[b.start:b.start+b.count], maxval))
	}
	return out
}

// widestChannel finds the per-channel [min,max] range across slice and
// returns the widest one, breaking ties per tieBreakOrder.
func widestChannel(slice []histogram.Entry) channel {
	var lo, hi [4]uint8
	for i := range lo {
		lo[i] = 255
	}
	for _, e := range slice {
		for _, ch := range tieBreakOrder {
			v := channelValue(e.Color, ch)
			if v < lo[ch] {
				lo[ch] = v
			}
			if v > hi[ch] {
				hi[ch] = v
			}
		}
	}
	best := tieBreakOrder[0]
	bestRange := int(hi[best]) - int(lo[best])
	for _, ch := range tieBreakOrder[1:] {
		r := int(hi[ch]) - int(lo[ch])
		if r > bestRange {
			bestRange = r
			best = ch
		}
	}
	return best
}

// splitPoint walks slice (already sorted by the chosen channel)
// accumulating weighted pixel count, and returns the index where the
// running total first reaches sum/2. The result is clamped to
// [1, len(slice)-1] so both halves are always non-empty.
func splitPoint(slice []histogram.Entry, sum int64) int {
	half := sum / 2
	var running int64
	for i, e := range slice {
		running += e.Count
		if running >= half {
			idx := i + 1
			if idx < 1 {
				idx = 1
			}
			if idx > len(slice)-1 {
				idx = len(slice) - 1
			}
			return idx
		}
	}
	return len(slice) - 1
}

func weightedSum(slice []histogram.Entry) int64 {
	var sum int64
	for _, e := range slice {
		sum += e.Count
	}
	return sum
}

// representative computes the pixel-weighted average color of slice,
// clamped to maxval per channel: weighting by pixel count (not
// distinct-color count) better matches perceptual frequency than a
// box-center or unweighted average.
func representative(slice []histogram.Entry, maxval int) colormath.Color {
	var sumB, sumG, sumR, sumA, sumCount int64
	for _, e := range slice {
		n := e.Count
		sumCount += n
		sumB += int64(e.Color.B) * n
		sumG += int64(e.Color.G) * n
		sumR += int64(e.Color.R) * n
		sumA += int64(e.Color.A) * n
	}
	if sumCount == 0 {
		return colormath.Color{}
	}
	clamp := func(v int64) uint8 {
		c := int(v / sumCount)
		if c > maxval {
			c = maxval
		}
		if c < 0 {
			c = 0
		}
		return uint8(c)
	}
	return colormath.Color{
		B: clamp(sumB),
		G: clamp(sumG),
		R: clamp(sumR),
		A: clamp(sumA),
	}
}
