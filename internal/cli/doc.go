// Package cli renders the demonstration blocks printed before the fibbuzz
// sequence.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayPrimes], [DisplayFibonacci].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatExecutionDuration].
package cli
