package pngcore

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/tilecodec/pngcore/errs"
	"github.com/tilecodec/pngcore/internal/classify"
	"github.com/tilecodec/pngcore/internal/colormath"
	"github.com/tilecodec/pngcore/internal/histogram"
	"github.com/tilecodec/pngcore/internal/pngchunk"
	"github.com/tilecodec/pngcore/internal/pngrow"
	"github.com/tilecodec/pngcore/internal/quantize"
	"github.com/tilecodec/pngcore/internal/remap"
)

// EncodeIndexed writes img as a palette PNG, quantizing its (possibly
// millions of) distinct premultiplied colors down to at most
// opts.NColors entries via median-cut.
func EncodeIndexed(w io.Writer, img *Image, opts IndexedOptions) error {
	if err := img.validate(); err != nil {
		return err
	}
	if opts.NColors < 0 || opts.NColors > 256 {
		return fmt.Errorf("pngcore: palette size %d outside [1, 256]: %w", opts.NColors, errs.ErrInvalidInput)
	}

	maxval, pixels, hist, err := buildHistogram(img)
	if err != nil {
		return err
	}

	entries := hist.Entries()
	n := opts.nColors()
	if n > len(entries) {
		n = len(entries)
	}
	palette := quantize.Quantize(entries, n, maxval)
	if len(palette) == 0 {
		return fmt.Errorf("pngcore: image has no pixels to quantize: %w", errs.ErrInvalidInput)
	}

	at := func(x, y int) colormath.Color { return pixels[y*img.Width+x] }
	indices := classify.ClassifyRaster(img.Width, img.Height, at, palette)

	rm, err := remap.Remap(palette, maxval)
	if err != nil {
		return err
	}
	remap.ApplyRemap(indices, rm.Remap)

	bitDepth := indexBitDepth(len(palette))

	if err := pngchunk.WriteSignature(w); err != nil {
		return fmt.Errorf("pngcore: %w", err)
	}
	if err := pngchunk.WriteChunk(w, "IHDR", packIHDR(img.Width, img.Height, bitDepth, pngrow.ColorPalette, 0)); err != nil {
		return fmt.Errorf("pngcore: writing IHDR: %w", err)
	}
	if err := pngchunk.WriteChunk(w, "PLTE", encodePLTE(rm.RGB)); err != nil {
		return fmt.Errorf("pngcore: writing PLTE: %w", err)
	}
	if rm.NumA > 0 {
		if err := pngchunk.WriteChunk(w, "tRNS", rm.Alpha); err != nil {
			return fmt.Errorf("pngcore: writing tRNS: %w", err)
		}
	}

	rowBytes := pngrow.BytesPerRow(img.Width, bitDepth, pngrow.ColorPalette)
	var raw bytes.Buffer
	row := make([]byte, rowBytes+1)
	for y := 0; y < img.Height; y++ {
		row[0] = pngrow.FilterNone
		pngrow.PackIndices(row[1:], indices[y*img.Width:(y+1)*img.Width], bitDepth)
		raw.Write(row)
	}

	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, opts.Compression.zlibLevel())
	if err != nil {
		return fmt.Errorf("pngcore: %w", err)
	}
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return fmt.Errorf("pngcore: deflating IDAT: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("pngcore: deflating IDAT: %w", err)
	}
	if err := pngchunk.WriteChunk(w, "IDAT", idat.Bytes()); err != nil {
		return fmt.Errorf("pngcore: writing IDAT: %w", err)
	}
	if err := pngchunk.WriteChunk(w, "IEND", nil); err != nil {
		return fmt.Errorf("pngcore: writing IEND: %w", err)
	}
	return nil
}

// buildHistogram runs the rescale retry loop: build the histogram at full
// 8-bit resolution, and if the image has more distinct colors than the
// histogram can hold, halve the channel resolution (maxval) and retry.
// Each retry rescales pixels in place from the previous maxval rather
// than back from the original 8-bit samples, cascading the rounding the
// same way the depth-reduction loop this is grounded on does: each pass
// only ever halves the *current* resolution, so by the time maxval has
// been halved twice a channel has been rounded twice, not rescaled once
// directly from 255. Returns the final maxval and the rescaled pixel
// buffer (row-major, same order as Image.At) alongside the histogram so
// the caller can classify against the exact values the palette was
// quantized from.
func buildHistogram(img *Image) (maxval int, pixels []colormath.Color, hist *histogram.Histogram, err error) {
	pixels = make([]colormath.Color, img.Width*img.Height)
	i := 0
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			b, g, r, a := img.At(x, y)
			pixels[i] = colormath.Color{B: b, G: g, R: r, A: a}
			i++
		}
	}

	for maxval = 255; ; {
		h := histogram.New(histogram.MaxColors)
		overflowed := false
		for _, c := range pixels {
			if addErr := h.Add(c); addErr != nil {
				overflowed = true
				break
			}
		}
		if !overflowed {
			return maxval, pixels, h, nil
		}
		if maxval <= 1 {
			return 0, nil, nil, fmt.Errorf("pngcore: image cannot be reduced to a tractable histogram: %w", errs.ErrQuantizerInvariant)
		}
		newmaxval := maxval / 2
		for i, c := range pixels {
			pixels[i] = colormath.Color{
				B: colormath.Rescale(c.B, maxval, newmaxval),
				G: colormath.Rescale(c.G, maxval, newmaxval),
				R: colormath.Rescale(c.R, maxval, newmaxval),
				A: colormath.Rescale(c.A, maxval, newmaxval),
			}
		}
		maxval = newmaxval
	}
}

// indexBitDepth picks the smallest PNG palette bit depth that can address k
// palette entries.
func indexBitDepth(k int) int {
	switch {
	case k <= 2:
		return 1
	case k <= 4:
		return 2
	case k <= 16:
		return 4
	default:
		return 8
	}
}

func encodePLTE(rgb []remap.RGB) []byte {
	out := make([]byte, len(rgb)*3)
	for i, c := range rgb {
		out[3*i] = c.R
		out[3*i+1] = c.G
		out[3*i+2] = c.B
	}
	return out
}
