package pngcore_test

import (
	"bytes"
	"fmt"

	"github.com/tilecodec/pngcore"
)

func ExampleDecode() {
	data, err := pngcore.CreateSolid(4, 4, 0xFFFF0000, pngcore.FormatAuto, pngcore.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	img, err := pngcore.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%dx%d\n", img.Width, img.Height)
	// Output:
	// 4x4
}

func ExampleDecodeConfig() {
	data, err := pngcore.CreateSolid(16, 16, 0xFF0000FF, pngcore.FormatAuto, pngcore.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	cfg, err := pngcore.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%dx%d\n", cfg.Width, cfg.Height)
	// Output:
	// 16x16
}

func ExampleEncodeIndexed() {
	img, err := pngcore.NewImage(2, 1)
	if err != nil {
		fmt.Println(err)
		return
	}
	img.Set(0, 0, 0, 0, 255, 255) // red
	img.Set(1, 0, 255, 0, 0, 255) // blue

	var buf bytes.Buffer
	if err := pngcore.EncodeIndexed(&buf, img, pngcore.IndexedOptions{NColors: 2}); err != nil {
		fmt.Println(err)
		return
	}
	got, err := pngcore.Decode(&buf)
	if err != nil {
		fmt.Println(err)
		return
	}
	_, _, r, a := got.At(0, 0)
	fmt.Printf("r=%d a=%d\n", r, a)
	// Output:
	// r=255 a=255
}
