package menger

import "errors"

var (
	// ErrInvalidArgument marks caller mistakes: negative division counts,
	// removal indices outside the 3x3x3 neighborhood, oversized slice depths.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported marks operations outside a mode's contract, such as
	// inverting a color volume.
	ErrUnsupported = errors.New("unsupported operation")
)
