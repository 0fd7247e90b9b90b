package pngrow

// rawSample reads the pixelIdx-th sample of a single-channel row (used for
// ColorGray and ColorPalette, the only two color types PNG allows at
// sub-8-bit depths) without any depth scaling.
func rawSample(row []byte, pixelIdx, bitDepth int) int {
	switch bitDepth {
	case 16:
		off := pixelIdx * 2
		return int(row[off])<<8 | int(row[off+1])
	case 8:
		return int(row[pixelIdx])
	default:
		bitOffset := pixelIdx * bitDepth
		byteIdx := bitOffset / 8
		shift := 8 - bitDepth - bitOffset%8
		mask := (1 << bitDepth) - 1
		return (int(row[byteIdx]) >> uint(shift)) & mask
	}
}

// scaleTo8 expands a sub-8-bit gray sample to the 0-255 range (bit-depth
// expansion), or truncates a 16-bit sample to its high byte. 8-bit samples
// pass through unchanged.
func scaleTo8(v, bitDepth int) uint8 {
	switch {
	case bitDepth == 16:
		return uint8(v >> 8)
	case bitDepth == 8:
		return uint8(v)
	default:
		maxv := (1 << bitDepth) - 1
		return uint8((v*255 + maxv/2) / maxv)
	}
}

// sampleN reads the pixelIdx-th pixel's channel-th sample from a
// multi-channel row at a byte-aligned bit depth (8 or 16 — the only depths
// PNG allows for GrayAlpha/True/TrueAlpha color types).
func sampleN(row []byte, pixelIdx, channel, channels, bitDepth int) int {
	bps := bitDepth / 8
	off := (pixelIdx*channels + channel) * bps
	if bps == 2 {
		return int(row[off])<<8 | int(row[off+1])
	}
	return int(row[off])
}

func sampleHigh(v, bitDepth int) uint8 {
	if bitDepth == 16 {
		return uint8(v >> 8)
	}
	return uint8(v)
}

// ExpandRow canonicalizes one already-unfiltered scanline into straight
// (non-premultiplied) 8-bit RGBA samples: expand sub-8-bit/palette to
// 8-bit RGB, strip 16-bit to 8-bit, expand grayscale to RGB, and fill an
// opaque alpha channel where the source has none.
//
// dst must have length width*4. palette and trns are used only for
// ColorPalette rows; palette indices past the end of trns, or any index
// when trns is nil, are fully opaque.
func ExpandRow(dst, row []byte, width, bitDepth int, ct ColorType, palette []RGB, trns []uint8) {
	switch ct {
	case ColorGray:
		for x := 0; x < width; x++ {
			v := scaleTo8(rawSample(row, x, bitDepth), bitDepth)
			o := x * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = v, v, v, 255
		}
	case ColorGrayAlpha:
		for x := 0; x < width; x++ {
			g := sampleHigh(sampleN(row, x, 0, 2, bitDepth), bitDepth)
			a := sampleHigh(sampleN(row, x, 1, 2, bitDepth), bitDepth)
			o := x * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = g, g, g, a
		}
	case ColorTrue:
		for x := 0; x < width; x++ {
			r := sampleHigh(sampleN(row, x, 0, 3, bitDepth), bitDepth)
			g := sampleHigh(sampleN(row, x, 1, 3, bitDepth), bitDepth)
			b := sampleHigh(sampleN(row, x, 2, 3, bitDepth), bitDepth)
			o := x * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = r, g, b, 255
		}
	case ColorTrueAlpha:
		for x := 0; x < width; x++ {
			r := sampleHigh(sampleN(row, x, 0, 4, bitDepth), bitDepth)
			g := sampleHigh(sampleN(row, x, 1, 4, bitDepth), bitDepth)
			b := sampleHigh(sampleN(row, x, 2, 4, bitDepth), bitDepth)
			a := sampleHigh(sampleN(row, x, 3, 4, bitDepth), bitDepth)
			o := x * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = r, g, b, a
		}
	case ColorPalette:
		for x := 0; x < width; x++ {
			idx := rawSample(row, x, bitDepth)
			var rgb RGB
			if idx >= 0 && idx < len(palette) {
				rgb = palette[idx]
			}
			a := uint8(255)
			if idx >= 0 && idx < len(trns) {
				a = trns[idx]
			}
			o := x * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = rgb.R, rgb.G, rgb.B, a
		}
	}
}
