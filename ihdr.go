package pngcore

import (
	"fmt"

	"github.com/tilecodec/pngcore/errs"
	"github.com/tilecodec/pngcore/internal/pngrow"
)

type ihdr struct {
	width, height int
	bitDepth      int
	colorType     pngrow.ColorType
	interlace     int
}

// allowedBitDepths lists, per color type, the bit depths the PNG 1.2
// specification permits.
var allowedBitDepths = map[pngrow.ColorType][]int{
	pngrow.ColorGray:      {1, 2, 4, 8, 16},
	pngrow.ColorTrue:      {8, 16},
	pngrow.ColorPalette:   {1, 2, 4, 8},
	pngrow.ColorGrayAlpha: {8, 16},
	pngrow.ColorTrueAlpha: {8, 16},
}

func parseIHDR(data []byte) (*ihdr, error) {
	if len(data) != 13 {
		return nil, fmt.Errorf("pngcore: IHDR length %d, want 13: %w", len(data), errs.ErrDecode)
	}
	width := int(be32(data[0:4]))
	height := int(be32(data[4:8]))
	bitDepth := int(data[8])
	colorType := pngrow.ColorType(data[9])
	compression := data[10]
	filterMethod := data[11]
	interlace := int(data[12])

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pngcore: IHDR dimensions %dx%d: %w", width, height, errs.ErrDecode)
	}
	if compression != 0 {
		return nil, fmt.Errorf("pngcore: unsupported compression method %d: %w", compression, errs.ErrDecode)
	}
	if filterMethod != 0 {
		return nil, fmt.Errorf("pngcore: unsupported filter method %d: %w", filterMethod, errs.ErrDecode)
	}
	if interlace != 0 && interlace != 1 {
		return nil, fmt.Errorf("pngcore: unsupported interlace method %d: %w", interlace, errs.ErrDecode)
	}
	depths, ok := allowedBitDepths[colorType]
	if !ok {
		return nil, fmt.Errorf("pngcore: unsupported color type %d: %w", colorType, errs.ErrDecode)
	}
	if !containsInt(depths, bitDepth) {
		return nil, fmt.Errorf("pngcore: bit depth %d invalid for color type %d: %w", bitDepth, colorType, errs.ErrDecode)
	}

	return &ihdr{
		width:     width,
		height:    height,
		bitDepth:  bitDepth,
		colorType: colorType,
		interlace: interlace,
	}, nil
}

func parsePLTE(data []byte) ([]pngrow.RGB, error) {
	if len(data)%3 != 0 {
		return nil, fmt.Errorf("pngcore: PLTE length %d not a multiple of 3: %w", len(data), errs.ErrDecode)
	}
	n := len(data) / 3
	out := make([]pngrow.RGB, n)
	for i := 0; i < n; i++ {
		out[i] = pngrow.RGB{R: data[3*i], G: data[3*i+1], B: data[3*i+2]}
	}
	return out, nil
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func containsInt(s []int, v int) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// packIHDR assembles an IHDR chunk's 13-byte payload for the encoders,
// ready to hand to pngchunk.WriteChunk.
func packIHDR(width, height, bitDepth int, colorType pngrow.ColorType, interlace int) []byte {
	buf := make([]byte, 13)
	putBE32(buf[0:4], uint32(width))
	putBE32(buf[4:8], uint32(height))
	buf[8] = byte(bitDepth)
	buf[9] = byte(colorType)
	buf[10] = 0 // compression method
	buf[11] = 0 // filter method
	buf[12] = byte(interlace)
	return buf
}

func putBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
