package pngcore

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/tilecodec/pngcore/internal/colormath"
	"github.com/tilecodec/pngcore/internal/pngchunk"
	"github.com/tilecodec/pngcore/internal/pngrow"
)

// EncodeRGBA writes img as a truecolor PNG (color type RGB or RGBA,
// whichever the image's alpha channel requires), always using filter type
// None.
func EncodeRGBA(w io.Writer, img *Image, opts Options) error {
	if err := img.validate(); err != nil {
		return err
	}
	hasAlpha := imageHasTransparency(img)
	ct := pngrow.ColorTrue
	channels := 3
	if hasAlpha {
		ct = pngrow.ColorTrueAlpha
		channels = 4
	}

	if err := pngchunk.WriteSignature(w); err != nil {
		return fmt.Errorf("pngcore: %w", err)
	}
	if err := pngchunk.WriteChunk(w, "IHDR", packIHDR(img.Width, img.Height, 8, ct, 0)); err != nil {
		return fmt.Errorf("pngcore: writing IHDR: %w", err)
	}

	var raw bytes.Buffer
	rowBytes := img.Width * channels
	row := make([]byte, rowBytes+1)

	for y := 0; y < img.Height; y++ {
		row[0] = pngrow.FilterNone
		off := 1
		for x := 0; x < img.Width; x++ {
			b, g, r, a := img.At(x, y)
			sr, sg, sb := unpremultiplyBGR(b, g, r, a)
			row[off] = sr
			row[off+1] = sg
			row[off+2] = sb
			off += 3
			if hasAlpha {
				row[off] = a
				off++
			}
		}
		raw.Write(row[:rowBytes+1])
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

// imageHasTransparency reports whether any pixel's alpha is below fully
// opaque, the condition under which EncodeRGBA must emit an alpha channel.
func imageHasTransparency(img *Image) bool {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if _, _, _, a := img.At(x, y); a != 255 {
				return true
			}
		}
	}
	return false
}

// unpremultiplyBGR recovers straight R, G, B samples from a premultiplied
// BGRA pixel.
func unpremultiplyBGR(b, g, r, a uint8) (sr, sg, sb uint8) {
	switch a {
	case 0:
		return 0, 0, 0
	case 255:
		return r, g, b
	default:
		return colormath.Unpremul(r, a), colormath.Unpremul(g, a), colormath.Unpremul(b, a)
	}
}
