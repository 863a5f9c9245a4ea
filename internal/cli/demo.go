package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/agbru/fibbuzz/internal/primality"
)

// ValueSource yields successive values for DisplayFibonacci.
type ValueSource interface {
	Next() uint32
}

// DisplayPrimes lists every prime below the bound for visual inspection.
// A newline opens each group of rowWidth values and every value is followed
// by a space; the block ends with a blank line.
//
// Parameters:
//   - out: The output writer.
//   - below: The exclusive upper bound.
//   - rowWidth: The number of primes per row; values below 1 are treated as 1.
//
// Returns:
//   - error: The first write error; nothing more is written after it.
func DisplayPrimes(out io.Writer, below uint32, rowWidth int) error {
	if rowWidth < 1 {
		rowWidth = 1
	}
	if _, err := fmt.Fprintf(out, "Testing isPrime() up to %d\n", below); err != nil {
		return err
	}

	var werr error
	count := 0
	buf := make([]byte, 0, 16)
	primality.Primes(below, func(p uint32) {
		if werr != nil {
			return
		}
		buf = buf[:0]
		if count%rowWidth == 0 {
			buf = append(buf, '\n')
		}
		count++
		buf = strconv.AppendUint(buf, uint64(p), 10)
		buf = append(buf, ' ')
		_, werr = out.Write(buf)
	})
	if werr != nil {
		return werr
	}
	_, err := io.WriteString(out, "\n\n")
	return err
}

// cancelCheckInterval is how many values are printed between context checks.
const cancelCheckInterval = 4096

// DisplayFibonacci prints the next n values of src on a single line, followed
// by a blank line. The source is left advanced by n values.
//
// Parameters:
//   - ctx: Checked periodically; cancellation stops the listing early.
//   - out: The output writer.
//   - src: The generator to draw from.
//   - n: The number of values to print.
//
// Returns:
//   - error: The context error if canceled, or the first write error.
func DisplayFibonacci(ctx context.Context, out io.Writer, src ValueSource, n uint32) error {
	if _, err := fmt.Fprintf(out, "Testing nextFib() up to %d...\n", n); err != nil {
		return err
	}

	buf := make([]byte, 0, 16)
	for i := uint32(0); i < n; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		buf = strconv.AppendUint(buf[:0], uint64(src.Next()), 10)
		buf = append(buf, ' ')
		if _, err := out.Write(buf); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, "\n\n")
	return err
}
