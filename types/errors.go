package types

import "errors"

// Error taxonomy shared across the scanner and harvest engine.
// Per-item failures are wrapped with one of these sentinels so callers
// can classify outcomes without string matching.
var (
	// ErrNotFound indicates a missing source path or registry entry.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a harvest target that already exists without overwrite.
	ErrConflict = errors.New("already exists")
	// ErrValidation indicates a descriptor or manifest that failed schema validation.
	ErrValidation = errors.New("validation failed")
	// ErrIO indicates a read/copy/write failure during harvest or analysis.
	ErrIO = errors.New("io failure")
	// ErrExternalTool indicates a git or subprocess failure.
	ErrExternalTool = errors.New("external tool failure")
)
