package fbanc

import "errors"

// Sentinel errors for the three machine-detectable categories of §7.
// Category (iv) — a numerically degenerate block — is never an error: it
// is handled inline by the guards in complex.go/target.go and never
// surfaces here. Stability-gate rejection and optimizer non-improvement
// are expected outcomes, not errors, and have no sentinel of their own.
var (
	// ErrMissingInput is returned by a collaborator when a required input
	// file is absent. Callers degrade to a documented fallback and log a
	// warning; this is never fatal on its own.
	ErrMissingInput = errors.New("fbanc: input file missing")

	// ErrUnsupportedFormat is returned for a malformed or unsupported
	// input (e.g. non-PCM WAV, unsupported bit depth). Same graceful
	// degradation policy as ErrMissingInput.
	ErrUnsupportedFormat = errors.New("fbanc: unsupported input format")

	// ErrAllocation is returned when a required buffer could not be
	// acquired. This category is fatal: callers must unwind any
	// already-acquired resources and return nonzero.
	ErrAllocation = errors.New("fbanc: buffer allocation failed")
)
