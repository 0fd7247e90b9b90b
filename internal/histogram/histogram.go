// Package histogram builds a per-image color→count map, bounded by a
// maximum distinct-color count, for feeding the median-cut quantizer.
//
// The hash-chain bucket structure (a fixed-size hash table of singly linked
// chains over an arena of nodes) follows the shape of a VP8L color cache
// (a hash table of fixed buckets over a linear node arena), generalized
// from a single-slot replace-on-collision cache into a full counting
// histogram with chained buckets, since exact per-color counts are needed
// rather than a lossy recent-colors cache.
package histogram

import (
	"github.com/tilecodec/pngcore/internal/colormath"
)

// HashSize is the number of hash-chain buckets.
const HashSize = 20023

// MaxColors is the default cap on distinct colors a Histogram will track
// before Add starts reporting ErrTooManyColors.
const MaxColors = 32767

// noNext marks the end of a hash bucket's chain.
const noNext = -1

// Entry is one distinct color and the number of pixels of that color.
type Entry struct {
	Color colormath.Color
	Count int64
}

type node struct {
	color colormath.Color
	count int64
	next  int32
}

// Histogram is an unordered (color, count) map, bounded by MaxColors
// distinct entries. The zero value is not usable; construct with New.
type Histogram struct {
	maxColors int
	buckets   [HashSize]int32
	nodes     []node
}

// New allocates a Histogram that will report ErrTooManyColors once more
// than maxColors distinct colors have been added. maxColors <= 0 means
// MaxColors.
func New(maxColors int) *Histogram {
	if maxColors <= 0 {
		maxColors = MaxColors
	}
	h := &Histogram{maxColors: maxColors}
	for i := range h.buckets {
		h.buckets[i] = noNext
	}
	return h
}

// hashIndex computes the bucket index for a color:
// ((R*33023 + G*30013 + B*27011 + A*24007) & 0x7fffffff) mod HashSize.
func hashIndex(c colormath.Color) int {
	sum := uint32(c.R)*33023 + uint32(c.G)*30013 + uint32(c.B)*27011 + uint32(c.A)*24007
	return int((sum & 0x7fffffff) % HashSize)
}

// HashIndex exposes the same bucket hash used internally so that the
// classifier's nearest-palette memoization table can bucket on it too.
func HashIndex(c colormath.Color) int { return hashIndex(c) }

// ErrTooManyColors is returned by Add once the distinct-color count would
// exceed the histogram's configured cap. The caller's rescale loop is
// expected to halve maxval and retry the whole build on this error.
type ErrTooManyColors struct{}

func (ErrTooManyColors) Error() string { return "histogram: too many distinct colors" }

// Add inserts one pixel of color c, incrementing its count if already
// present. It returns ErrTooManyColors (and leaves the histogram
// unmodified) if c is a new color and the histogram is already at its
// distinct-color cap.
func (h *Histogram) Add(c colormath.Color) error {
	idx := hashIndex(c)
	for n := h.buckets[idx]; n != noNext; n = h.nodes[n].next {
		if h.nodes[n].color == c {
			h.nodes[n].count++
			return nil
		}
	}
	if len(h.nodes) >= h.maxColors {
		return ErrTooManyColors{}
	}
	h.nodes = append(h.nodes, node{color: c, count: 1, next: h.buckets[idx]})
	h.buckets[idx] = int32(len(h.nodes) - 1)
	return nil
}

// Len returns the number of distinct colors currently recorded.
func (h *Histogram) Len() int { return len(h.nodes) }

// Entries copies every (color, count) pair into a dense slice for the
// quantizer to sort and split.
func (h *Histogram) Entries() []Entry {
	out := make([]Entry, len(h.nodes))
	for i, n := range h.nodes {
		out[i] = Entry{Color: n.color, Count: n.count}
	}
	return out
}

// Sum returns the total pixel count across every distinct color (the
// denominator the median-cut splitter uses for its weighted midpoint).
func (h *Histogram) Sum() int64 {
	var sum int64
	for _, n := range h.nodes {
		sum += n.count
	}
	return sum
}
