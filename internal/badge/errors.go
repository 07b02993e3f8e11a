package badge

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned when the input cannot be read as an image.
	ErrDecode = errors.New("decode image")

	// ErrDimension is returned when a badge is not exactly CanvasSize on each edge.
	ErrDimension = errors.New("badge dimensions mismatch")

	// ErrMask is returned when a transparent pixel lies inside the badge circle.
	ErrMask = errors.New("transparent pixel inside circle")

	// ErrNotHappy is returned when too few pixels fall in the happy color band.
	ErrNotHappy = errors.New("colors are not happy")

	// ErrEncode is returned when the badge cannot be written as PNG.
	ErrEncode = errors.New("encode badge")

	// ErrEmptyImage is returned when an image has no pixels to classify.
	ErrEmptyImage = errors.New("image has no pixels")

	errNoImage = fmt.Errorf("%w: no image", ErrDecode)
)

// Messages reported in verdicts. They are part of the public contract.
const (
	MsgHappy         = "The image gives a happy feeling."
	MsgNotHappy      = "The image does not give a happy feeling."
	MsgMaskOK        = "All non-transparent pixels are within the circle."
	MsgMaskViolation = "Transparent pixels found inside the circle."
	MsgVerified      = "Badge is verified."
	MsgConverted     = "Image converted to badge successfully."
)
