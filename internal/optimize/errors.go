package optimize

import "errors"

// Terminal pipeline errors. All stem from the input itself, so none are
// retried internally; callers surface them and let the user pick another
// photo. Decode failures wrap the codec's own error instead.
var (
	// ErrEmptyInput means the raw byte buffer had zero length.
	ErrEmptyInput = errors.New("empty image input")

	// ErrInvalidDimensions means the decoder reported a non-positive
	// width or height.
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrEmptyEncode means the encoder produced an empty buffer.
	// Should be unreachable for valid input; kept as a guard.
	ErrEmptyEncode = errors.New("encoder produced empty output")
)
