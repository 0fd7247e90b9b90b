package pngrow

import "testing"

func TestPassDimensionsSumsToFullImage(t *testing.T) {
	width, height := 17, 13
	covered := make([][]bool, height)
	for i := range covered {
		covered[i] = make([]bool, width)
	}
	for pass := 0; pass < 7; pass++ {
		w, h := PassDimensions(width, height, pass)
		p := Adam7Passes[pass]
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := p.xOrig + x*p.xStep
				py := p.yOrig + y*p.yStep
				if px >= width || py >= height {
					t.Fatalf("pass %d: pixel (%d,%d) out of bounds %dx%d", pass, px, py, width, height)
				}
				if covered[py][px] {
					t.Fatalf("pass %d: pixel (%d,%d) covered twice", pass, px, py)
				}
				covered[py][px] = true
			}
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Fatalf("pixel (%d,%d) never covered by any pass", x, y)
			}
		}
	}
}

func TestPassDimensionsSmallImage(t *testing.T) {
	// A 1x1 image: only pass 0 (xOrig=0,yOrig=0) should cover it.
	for pass := 0; pass < 7; pass++ {
		w, h := PassDimensions(1, 1, pass)
		if pass == 0 {
			if w != 1 || h != 1 {
				t.Errorf("pass 0 dims = %dx%d, want 1x1", w, h)
			}
		} else if w != 0 && h != 0 {
			t.Errorf("pass %d dims = %dx%d, want a zero dimension for a 1x1 image", pass, w, h)
		}
	}
}

func TestScatterPassRowPlacement(t *testing.T) {
	width, height := 8, 8
	dst := make([]byte, width*height*4)
	passRow := []byte{1, 2, 3, 4} // one pixel, pass 0's first sub-row
	ScatterPassRow(dst, width*4, width, height, 0, 0, passRow)
	if dst[0] != 1 || dst[1] != 2 || dst[2] != 3 || dst[3] != 4 {
		t.Errorf("pass 0 row 0 pixel 0 = %v, want [1 2 3 4]", dst[0:4])
	}
}
