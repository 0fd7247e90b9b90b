package classify

import (
	"testing"

	"github.com/tilecodec/pngcore/internal/colormath"
)

func TestClassifyPicksExactMatch(t *testing.T) {
	palette := []colormath.Color{
		{B: 0, G: 0, R: 0, A: 255},
		{B: 255, G: 255, R: 255, A: 255},
		{B: 128, G: 128, R: 128, A: 255},
	}
	c := New(palette)
	for i, p := range palette {
		if got := c.Classify(p); got != i {
			t.Errorf("Classify(%v) = %d, want %d", p, got, i)
		}
	}
}

func TestClassifyNearest(t *testing.T) {
	palette := []colormath.Color{
		{B: 0, G: 0, R: 0, A: 255},
		{B: 255, G: 255, R: 255, A: 255},
	}
	c := New(palette)
	if got := c.Classify(colormath.Color{B: 10, G: 10, R: 10, A: 255}); got != 0 {
		t.Errorf("Classify near-black = %d, want 0", got)
	}
	if got := c.Classify(colormath.Color{B: 240, G: 240, R: 240, A: 255}); got != 1 {
		t.Errorf("Classify near-white = %d, want 1", got)
	}
}

func TestClassifyMemoizationConsistent(t *testing.T) {
	palette := []colormath.Color{
		{B: 0, G: 0, R: 0, A: 255},
		{B: 255, G: 255, R: 255, A: 255},
		{B: 50, G: 60, R: 70, A: 200},
	}
	c := New(palette)
	px := colormath.Color{B: 48, G: 58, R: 68, A: 200}
	first := c.Classify(px)
	for i := 0; i < 5; i++ {
		if got := c.Classify(px); got != first {
			t.Fatalf("repeated Classify(%v) = %d, want %d (memo mismatch)", px, got, first)
		}
	}
}

func TestClassifyRaster(t *testing.T) {
	palette := []colormath.Color{
		{B: 0, G: 0, R: 0, A: 255},
		{B: 255, G: 255, R: 255, A: 255},
	}
	at := func(x, y int) colormath.Color {
		if (x+y)%2 == 0 {
			return colormath.Color{B: 0, G: 0, R: 0, A: 255}
		}
		return colormath.Color{B: 255, G: 255, R: 255, A: 255}
	}
	out := ClassifyRaster(2, 2, at, palette)
	want := []byte{0, 1, 1, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestNearestTieBreaksFirstOccurrence(t *testing.T) {
	palette := []colormath.Color{
		{B: 10, G: 10, R: 10, A: 255},
		{B: 10, G: 10, R: 10, A: 255},
	}
	if got := nearest(palette, colormath.Color{B: 10, G: 10, R: 10, A: 255}); got != 0 {
		t.Errorf("nearest tie-break = %d, want 0", got)
	}
}
