package pngrow

// adam7Pass describes one of the seven Adam7 interlacing passes: the pixel
// position of the pass's first sample and the stride between samples, in
// both axes, over the full image.
type adam7Pass struct {
	xOrig, yOrig, xStep, yStep int
}

// Adam7Passes is the fixed seven-pass geometry PNG's Adam7 interlacing
// defines.
var Adam7Passes = [7]adam7Pass{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

// PassDimensions returns the width and height (in pixels) of the given
// Adam7 pass's sub-image for a full image of size width x height.
func PassDimensions(width, height, pass int) (w, h int) {
	p := Adam7Passes[pass]
	if width > p.xOrig {
		w = (width - p.xOrig + p.xStep - 1) / p.xStep
	}
	if height > p.yOrig {
		h = (height - p.yOrig + p.yStep - 1) / p.yStep
	}
	return w, h
}

// ScatterPassRow writes one already-expanded (8-bit RGBA) sub-image row
// from an Adam7 pass into its final position in a full-size canonical RGBA8
// raster (dst, with byte stride dstStride). subY is the row index within
// the pass's own sub-image.
func ScatterPassRow(dst []byte, dstStride, width, height, pass, subY int, passRow []byte) {
	p := Adam7Passes[pass]
	py := p.yOrig + subY*p.yStep
	if py < 0 || py >= height {
		return
	}
	w, _ := PassDimensions(width, height, pass)
	for x := 0; x < w; x++ {
		px := p.xOrig + x*p.xStep
		if px >= width {
			continue
		}
		so := x * 4
		do := py*dstStride + px*4
		copy(dst[do:do+4], passRow[so:so+4])
	}
}
