package pngcore

import (
	"bytes"
	"fmt"

	"github.com/tilecodec/pngcore/errs"
	"github.com/tilecodec/pngcore/internal/colormath"
)

// CreateSolid builds a width x height PNG filled with a single repeated
// straight (non-premultiplied) color, encoded as either a truecolor or
// palette PNG depending on format.
//
// color is the native-endian reinterpretation of a BGRA pixel as a
// uint32 (the same layout a raw memcpy of one Image pixel into a uint32
// would produce on a little-endian machine): byte 0 (low byte) is blue,
// byte 3 (high byte) is alpha, i.e. 0xAARRGGBB.
func CreateSolid(width, height int, color uint32, format Format, opts Options) ([]byte, error) {
	img, err := NewImage(width, height)
	if err != nil {
		return nil, err
	}

	b := uint8(color)
	g := uint8(color >> 8)
	r := uint8(color >> 16)
	a := uint8(color >> 24)

	pb, pg, pr := colormath.Premul(b, a), colormath.Premul(g, a), colormath.Premul(r, a)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, pb, pg, pr, a)
		}
	}

	var buf bytes.Buffer
	switch format {
	case FormatIndexed:
		if err := EncodeIndexed(&buf, img, IndexedOptions{Compression: opts.Compression}); err != nil {
			return nil, err
		}
	case FormatAuto:
		if err := EncodeRGBA(&buf, img, opts); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("pngcore: unknown format %d: %w", format, errs.ErrInvalidInput)
	}
	return buf.Bytes(), nil
}
