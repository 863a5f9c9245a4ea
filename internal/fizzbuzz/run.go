package fizzbuzz

import (
	"bufio"
	"context"
	"io"
)

// cancelCheckInterval is how many lines are written between context checks.
const cancelCheckInterval = 4096

// Sequence is the source of values for Run.
//
//go:generate mockgen -destination=mocks/mock_sequence.go -package=mocks . Sequence,Recorder
type Sequence interface {
	Next() uint32
	Reset()
}

// Recorder receives the rules matched by each line.
type Recorder interface {
	Record(rules Rules)
}

// Styler decorates a rule word before it is written. Plain numbers are never
// styled.
type Styler interface {
	Style(rule Rules, word string) string
}

// Options configures Run. The zero value writes unstyled output and records
// nothing.
type Options struct {
	Styler   Styler
	Recorder Recorder
}

// Run draws n values from seq and writes one line per value to w.
//
// The sequence is consumed from its current position; callers that printed
// part of it beforehand must Reset it first.
//
// Parameters:
//   - ctx: Checked periodically; cancellation stops the loop early.
//   - w: The destination for the lines.
//   - seq: The value source.
//   - n: The number of lines to write.
//   - opts: Styling and recording hooks.
//
// Returns:
//   - error: The context error if canceled, or the first write error.
func Run(ctx context.Context, w io.Writer, seq Sequence, n uint32, opts Options) error {
	bw := bufio.NewWriter(w)
	var line []byte

	for i := uint32(0); i < n; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				bw.Flush()
				return err
			}
		}

		fib := seq.Next()
		rules := Classify(fib)
		line = appendToken(line[:0], fib, rules, opts.Styler)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
		if opts.Recorder != nil {
			opts.Recorder.Record(rules)
		}
	}
	return bw.Flush()
}
