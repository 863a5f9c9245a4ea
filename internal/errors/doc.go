// Package apperrors defines structured application error types and the exit
// codes they map to, allowing for a clear distinction between usage errors
// (wrong argument count, invalid number) and runtime failures.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Error types that carry a cause implement Unwrap() to support errors.Is() and errors.As().
package apperrors
