package pngcore

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/tilecodec/pngcore/errs"
	"github.com/tilecodec/pngcore/internal/colormath"
	"github.com/tilecodec/pngcore/internal/pngchunk"
	"github.com/tilecodec/pngcore/internal/pngrow"
)

// Decode reads an arbitrary PNG stream — any bit depth, color type, and
// interlacing — and canonicalizes it into an Image: straight samples are
// expanded to 8 bits per channel, reordered to BGRA, and premultiplied by
// alpha.
func Decode(r io.Reader) (*Image, error) {
	if err := pngchunk.ReadSignature(r); err != nil {
		return nil, fmt.Errorf("pngcore: %w: %w", errs.ErrDecode, err)
	}

	var hd *ihdr
	var palette []pngrow.RGB
	var trns []uint8
	var idat bytes.Buffer
	sawIDAT := false

loop:
	for {
		c, err := pngchunk.ReadChunk(r)
		if err != nil {
			return nil, fmt.Errorf("pngcore: %w: %w", errs.ErrDecode, err)
		}
		switch c.Type {
		case "IHDR":
			hd, err = parseIHDR(c.Data)
			if err != nil {
				return nil, err
			}
		case "PLTE":
			palette, err = parsePLTE(c.Data)
			if err != nil {
				return nil, err
			}
		case "tRNS":
			trns = append([]byte(nil), c.Data...)
		case "IDAT":
			sawIDAT = true
			idat.Write(c.Data)
		case "IEND":
			break loop
		}
	}

	if hd == nil {
		return nil, fmt.Errorf("pngcore: stream has no IHDR chunk: %w", errs.ErrDecode)
	}
	if !sawIDAT {
		return nil, fmt.Errorf("pngcore: stream has no IDAT chunk: %w", errs.ErrDecode)
	}
	if hd.colorType == pngrow.ColorPalette && len(palette) == 0 {
		return nil, fmt.Errorf("pngcore: palette color type without PLTE chunk: %w", errs.ErrDecode)
	}

	zr, err := zlib.NewReader(&idat)
	if err != nil {
		return nil, fmt.Errorf("pngcore: inflating IDAT stream: %w", errs.ErrDecode)
	}
	defer zr.Close()

	canonStride := hd.width * 4
	canon := make([]byte, canonStride*hd.height)
	bpp := pngrow.BytesPerPixel(hd.bitDepth, hd.colorType)

	readPass := func(passWidth, passHeight int, scatter func(subY int, rgba8 []byte)) error {
		if passWidth == 0 || passHeight == 0 {
			return nil
		}
		rowBytes := pngrow.BytesPerRow(passWidth, hd.bitDepth, hd.colorType)
		prev := make([]byte, rowBytes)
		cur := make([]byte, rowBytes)
		rgba8 := make([]byte, passWidth*4)
		for y := 0; y < passHeight; y++ {
			var ft [1]byte
			if _, err := io.ReadFull(zr, ft[:]); err != nil {
				return fmt.Errorf("pngcore: reading filter byte (row %d): %w", y, errs.ErrDecode)
			}
			if _, err := io.ReadFull(zr, cur); err != nil {
				return fmt.Errorf("pngcore: reading scanline (row %d): %w", y, errs.ErrDecode)
			}
			if err := pngrow.Unfilter(ft[0], cur, prev, bpp); err != nil {
				return fmt.Errorf("pngcore: row %d: %w: %w", y, errs.ErrDecode, err)
			}
			pngrow.ExpandRow(rgba8, cur, passWidth, hd.bitDepth, hd.colorType, palette, trns)
			scatter(y, rgba8)
			prev, cur = cur, prev
		}
		return nil
	}

	if hd.interlace == 0 {
		err = readPass(hd.width, hd.height, func(y int, rgba8 []byte) {
			copy(canon[y*canonStride:(y+1)*canonStride], rgba8)
		})
	} else {
		for pass := 0; pass < 7 && err == nil; pass++ {
			pw, ph := pngrow.PassDimensions(hd.width, hd.height, pass)
			p := pass
			err = readPass(pw, ph, func(subY int, rgba8 []byte) {
				pngrow.ScatterPassRow(canon, canonStride, hd.width, hd.height, p, subY, rgba8)
			})
		}
	}
	if err != nil {
		return nil, err
	}

	img, allocErr := NewImage(hd.width, hd.height)
	if allocErr != nil {
		return nil, allocErr
	}
	for y := 0; y < hd.height; y++ {
		srow := canon[y*canonStride : (y+1)*canonStride]
		drow := img.Pix[y*img.Stride : y*img.Stride+canonStride]
		for x := 0; x < hd.width; x++ {
			o := x * 4
			r, g, b, a := srow[o], srow[o+1], srow[o+2], srow[o+3]
			switch a {
			case 0:
				drow[o], drow[o+1], drow[o+2], drow[o+3] = 0, 0, 0, 0
			case 255:
				drow[o], drow[o+1], drow[o+2], drow[o+3] = b, g, r, 255
			default:
				drow[o] = colormath.Premul(b, a)
				drow[o+1] = colormath.Premul(g, a)
				drow[o+2] = colormath.Premul(r, a)
				drow[o+3] = a
			}
		}
	}
	return img, nil
}

// DecodeConfig reads only enough of a PNG stream (the signature and the
// IHDR chunk) to report its pixel dimensions and color model, without
// inflating any image data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	if err := pngchunk.ReadSignature(r); err != nil {
		return image.Config{}, fmt.Errorf("pngcore: %w: %w", errs.ErrDecode, err)
	}
	c, err := pngchunk.ReadChunk(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("pngcore: %w: %w", errs.ErrDecode, err)
	}
	if c.Type != "IHDR" {
		return image.Config{}, fmt.Errorf("pngcore: first chunk is %q, want IHDR: %w", c.Type, errs.ErrDecode)
	}
	hd, err := parseIHDR(c.Data)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      hd.width,
		Height:     hd.height,
	}, nil
}
