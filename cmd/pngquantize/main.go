// Command pngquantize encodes, decodes, and quantizes PNG images from the
// command line.
//
// Usage:
//
//	pngquantize decode <input.png>                  Print image dimensions
//	pngquantize encode [options] <input> <out.png>  Re-encode as truecolor PNG
//	pngquantize quantize [options] <input> <out.png> Re-encode as palette PNG
//	pngquantize solid [options] <out.png>           Write a solid-color PNG
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/tilecodec/pngcore"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "decode":
		err = runDecode(os.Args[2:])
	case "encode":
		err = runEncode(os.Args[2:])
	case "quantize":
		err = runQuantize(os.Args[2:])
	case "solid":
		err = runSolid(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "pngquantize: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "pngquantize: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  pngquantize decode <input.png>
  pngquantize encode [options] <input> <out.png>
  pngquantize quantize [options] <input> <out.png>
  pngquantize solid [options] <out.png>

Run "pngquantize <command> -h" for command-specific options.
`)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func compressionFlag(fs *flag.FlagSet) *string {
	return fs.String("compression", "default", "compression level: fast/default/best")
}

func parseCompression(s string) (pngcore.CompressionLevel, error) {
	switch s {
	case "fast":
		return pngcore.FastCompression, nil
	case "default":
		return pngcore.DefaultCompression, nil
	case "best":
		return pngcore.BestCompression, nil
	default:
		return 0, fmt.Errorf("invalid compression level %q (want fast/default/best)", s)
	}
}

// --- decode ---

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("decode: missing input file\nUsage: pngquantize decode <input.png>")
	}

	f, err := openInput(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	img, err := pngcore.Decode(f)
	if err != nil {
		return err
	}
	fmt.Printf("%dx%d, stride=%d\n", img.Width, img.Height, img.Stride)
	return nil
}

// --- encode ---

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	compression := compressionFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("encode: missing input/output\nUsage: pngquantize encode [options] <input> <out.png>")
	}

	level, err := parseCompression(*compression)
	if err != nil {
		return err
	}

	img, err := loadAsImage(fs.Arg(0))
	if err != nil {
		return err
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	defer out.Close()

	return pngcore.EncodeRGBA(out, img, pngcore.Options{Compression: level})
}

// --- quantize ---

func runQuantize(args []string) error {
	fs := flag.NewFlagSet("quantize", flag.ContinueOnError)
	compression := compressionFlag(fs)
	nColors := fs.Int("colors", 256, "maximum palette size (1-256)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("quantize: missing input/output\nUsage: pngquantize quantize [options] <input> <out.png>")
	}

	level, err := parseCompression(*compression)
	if err != nil {
		return err
	}

	img, err := loadAsImage(fs.Arg(0))
	if err != nil {
		return err
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}
	defer out.Close()

	return pngcore.EncodeIndexed(out, img, pngcore.IndexedOptions{Compression: level, NColors: *nColors})
}

// --- solid ---

func runSolid(args []string) error {
	fs := flag.NewFlagSet("solid", flag.ContinueOnError)
	compression := compressionFlag(fs)
	width := fs.Int("w", 256, "tile width")
	height := fs.Int("h", 256, "tile height")
	color := fs.Uint("color", 0xffff0000, "0xAARRGGBB solid color")
	indexed := fs.Bool("indexed", false, "write a 1-entry palette PNG instead of truecolor")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("solid: missing output\nUsage: pngquantize solid [options] <out.png>")
	}

	level, err := parseCompression(*compression)
	if err != nil {
		return err
	}

	format := pngcore.FormatAuto
	if *indexed {
		format = pngcore.FormatIndexed
	}

	data, err := pngcore.CreateSolid(*width, *height, uint32(*color), format, pngcore.Options{Compression: level})
	if err != nil {
		return err
	}
	return os.WriteFile(fs.Arg(0), data, 0o644)
}

// loadAsImage decodes input (any PNG this module can read, or any format
// the standard library's image/png can read, as a fallback for inputs
// pngquantize itself didn't produce) into a *pngcore.Image.
func loadAsImage(path string) (*pngcore.Image, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	if img, err := pngcore.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	std, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return fromStdImage(std), nil
}

func fromStdImage(src image.Image) *pngcore.Image {
	b := src.Bounds()
	img, err := pngcore.NewImage(b.Dx(), b.Dy())
	if err != nil {
		panic(err) // NewImage fails on non-positive dimensions or a pixel buffer over its size cap.
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			img.Set(x-b.Min.X, y-b.Min.Y, uint8(bl>>8), uint8(g>>8), uint8(r>>8), uint8(a>>8))
		}
	}
	return img
}

func init() {
	image.RegisterFormat("png", "\x89PNG\r\n\x1a\n", png.Decode, png.DecodeConfig)
}
