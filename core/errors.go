package core

import "errors"

var (
	// ErrInvalidParameter marks a configuration value outside its
	// documented range, or an unknown jam type. Callers see it before
	// any signal computation runs.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrShapeMismatch marks traces of differing length being combined.
	// This is a programming defect, not a user error.
	ErrShapeMismatch = errors.New("shape mismatch")
)
