// Package logging provides a unified logging interface for fibbuzz.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components while supporting multiple backends. Logs are diagnostics
// only and always go to the error stream, never to the sequence output.
package logging
