// Package errs defines the sentinel error values shared across the codec
// packages. Call sites wrap one of these with fmt.Errorf's %w verb so that
// errors.Is keeps working all the way up to the root package's exported
// functions.
package errs

import "errors"

// The four error kinds the codec core can signal.
var (
	// ErrAllocationFailure reports an Image pixel buffer too large to
	// reasonably allocate.
	ErrAllocationFailure = errors.New("pngcore: allocation failure")

	// ErrDecode reports an invalid PNG header, a truncated stream, or a
	// bit depth/color type combination the canonicalization transforms
	// cannot normalize.
	ErrDecode = errors.New("pngcore: decode error")

	// ErrQuantizerInvariant reports that the palette remapper's two-pointer
	// placement invariant (bot_idx == top_idx + 1) failed, indicating a
	// bug in the upstream quantizer or classifier.
	ErrQuantizerInvariant = errors.New("pngcore: quantizer invariant violated")

	// ErrInvalidInput reports a zero image dimension, a stride too small
	// for the image width, or a palette size outside [1, 256].
	ErrInvalidInput = errors.New("pngcore: invalid input")
)
