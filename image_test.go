package pngcore

import (
	"errors"
	"testing"

	"github.com/tilecodec/pngcore/errs"
)

func TestNewImageZeroed(t *testing.T) {
	img, err := NewImage(4, 3)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	if img.Stride != 16 {
		t.Errorf("Stride = %d, want 16", img.Stride)
	}
	if len(img.Pix) != 16*3 {
		t.Errorf("len(Pix) = %d, want %d", len(img.Pix), 16*3)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			b, g, r, a := img.At(x, y)
			if b != 0 || g != 0 || r != 0 || a != 0 {
				t.Fatalf("At(%d,%d) = %d,%d,%d,%d, want all zero", x, y, b, g, r, a)
			}
		}
	}
}

func TestNewImageRejectsBadDimensions(t *testing.T) {
	if _, err := NewImage(0, 5); err == nil {
		t.Error("NewImage(0,5): want error, got nil")
	}
	if _, err := NewImage(5, -1); err == nil {
		t.Error("NewImage(5,-1): want error, got nil")
	}
}

func TestNewImageRejectsOversizedAllocation(t *testing.T) {
	// width*height*4 comfortably exceeds maxPixBytes without overflowing
	// an int64 product.
	_, err := NewImage(1<<20, 1<<20)
	if err == nil {
		t.Fatal("NewImage(1<<20, 1<<20): want error, got nil")
	}
	if !errors.Is(err, errs.ErrAllocationFailure) {
		t.Errorf("NewImage(1<<20, 1<<20) error = %v, want errs.ErrAllocationFailure", err)
	}
}

func TestImageSetAtRoundTrip(t *testing.T) {
	img, err := NewImage(2, 2)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	img.Set(1, 0, 10, 20, 30, 40)
	b, g, r, a := img.At(1, 0)
	if b != 10 || g != 20 || r != 30 || a != 40 {
		t.Errorf("At(1,0) = %d,%d,%d,%d, want 10,20,30,40", b, g, r, a)
	}
	// Unwritten pixels are unaffected.
	b, g, r, a = img.At(0, 0)
	if b != 0 || g != 0 || r != 0 || a != 0 {
		t.Errorf("At(0,0) = %d,%d,%d,%d, want all zero", b, g, r, a)
	}
}

func TestValidateRejectsShortBuffer(t *testing.T) {
	img := &Image{Width: 4, Height: 4, Stride: 16, Pix: make([]byte, 10)}
	if err := img.validate(); err == nil {
		t.Error("validate on short Pix buffer: want error, got nil")
	}
}

func TestValidateRejectsNarrowStride(t *testing.T) {
	img := &Image{Width: 4, Height: 4, Stride: 8, Pix: make([]byte, 64)}
	if err := img.validate(); err == nil {
		t.Error("validate on stride < Width*4: want error, got nil")
	}
}

func TestValidateAcceptsPaddedStride(t *testing.T) {
	img := &Image{Width: 4, Height: 4, Stride: 20, Pix: make([]byte, 20*4)}
	if err := img.validate(); err != nil {
		t.Errorf("validate with padded stride: %v", err)
	}
}
