package tsplib

import "errors"

var (
	// ErrSyntax is returned for lines that cannot be parsed.
	ErrSyntax = errors.New("tsplib: syntax error")

	// ErrUnsupported is returned for valid TSPLIB features this package does not handle.
	ErrUnsupported = errors.New("tsplib: unsupported instance")
)
