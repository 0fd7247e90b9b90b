// Package pngcore provides a pure Go PNG codec and median-cut color
// quantizer tuned for map-tile caching: decoding arbitrary PNG tiles into a
// canonical premultiplied-BGRA raster, and re-encoding that raster as either
// truecolor or palette PNG with correct alpha handling.
//
// The package implements the full PNG 1.2 baseline (grayscale,
// truecolor, palette, and their alpha variants, at any bit depth, Adam7
// interlaced or not) on decode, and writes either RGB/RGBA truecolor PNG or
// a ≤256-entry indexed PNG (via median-cut quantization) on encode. It has
// no CGo dependency and no third-party package dependency.
//
// Basic usage for decoding:
//
//	img, err := pngcore.Decode(reader)
//
// Basic usage for truecolor encoding:
//
//	err := pngcore.EncodeRGBA(writer, img, pngcore.Options{Compression: pngcore.BestCompression})
//
// Basic usage for palette encoding:
//
//	err := pngcore.EncodeIndexed(writer, img, pngcore.IndexedOptions{NColors: 64})
package pngcore
