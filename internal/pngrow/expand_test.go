package pngrow

import "testing"

func TestExpandRowGray8(t *testing.T) {
	row := []byte{0, 128, 255}
	dst := make([]byte, 3*4)
	ExpandRow(dst, row, 3, 8, ColorGray, nil, nil)
	want := []byte{0, 0, 0, 255, 128, 128, 128, 255, 255, 255, 255, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestExpandRowGray1Bit(t *testing.T) {
	// Two pixels packed MSB-first into one byte: 1,0 -> 0b10000000.
	row := []byte{0x80}
	dst := make([]byte, 2*4)
	ExpandRow(dst, row, 2, 1, ColorGray, nil, nil)
	if dst[0] != 255 || dst[4] != 0 {
		t.Errorf("1-bit gray expand = %v, want [255 ... 0 ...]", dst)
	}
}

func TestExpandRowTrueAlpha(t *testing.T) {
	row := []byte{10, 20, 30, 40}
	dst := make([]byte, 4)
	ExpandRow(dst, row, 1, 8, ColorTrueAlpha, nil, nil)
	want := []byte{10, 20, 30, 40}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestExpandRowTrueNoAlpha(t *testing.T) {
	row := []byte{10, 20, 30}
	dst := make([]byte, 4)
	ExpandRow(dst, row, 1, 8, ColorTrue, nil, nil)
	want := []byte{10, 20, 30, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestExpandRowPaletteWithTRNS(t *testing.T) {
	palette := []RGB{
		{R: 1, G: 2, B: 3},
		{R: 4, G: 5, B: 6},
	}
	trns := []uint8{0}
	row := []byte{0, 1}
	dst := make([]byte, 2*4)
	ExpandRow(dst, row, 2, 8, ColorPalette, palette, trns)
	if dst[3] != 0 {
		t.Errorf("index 0 alpha = %d, want 0 (from tRNS)", dst[3])
	}
	if dst[7] != 255 {
		t.Errorf("index 1 alpha = %d, want 255 (no tRNS entry)", dst[7])
	}
	if dst[4] != 4 || dst[5] != 5 || dst[6] != 6 {
		t.Errorf("index 1 RGB = %v, want [4 5 6]", dst[4:7])
	}
}

func TestExpandRow16BitTruncates(t *testing.T) {
	row := []byte{0xAB, 0xCD, 0x00, 0x00, 0xFF, 0xFF}
	dst := make([]byte, 4)
	ExpandRow(dst, row, 1, 16, ColorTrue, nil, nil)
	want := []byte{0xAB, 0x00, 0xFF, 255}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %#x, want %#x", i, dst[i], want[i])
		}
	}
}
