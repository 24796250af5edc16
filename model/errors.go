package model

import "errors"

// Sentinel error kinds, per spec.md §7. Each is wrapped with context via
// fmt.Errorf("%w: ...", ErrX) so callers can errors.Is/As against it.
var (
	// ErrNotElaborated: the model was handed to the construction
	// pipeline before elaboration completed.
	ErrNotElaborated = errors.New("model: not elaborated")

	// ErrWidthMismatch: a plain edge's endpoints (or a slice edge's
	// sliced views) disagree in width.
	ErrWidthMismatch = errors.New("model: width mismatch")

	// ErrBlockSignature: a behavioral block requires arguments. Carries
	// the block's file/line via the wrapping error message.
	ErrBlockSignature = errors.New("model: block signature requires no arguments")
)
