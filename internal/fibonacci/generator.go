// Package fibonacci provides the stateful Fibonacci generator that feeds the
// fibbuzz sequence.
package fibonacci

// Generator yields the Fibonacci sequence 1, 1, 2, 3, 5, 8, ... one value per
// call to Next. The zero value is ready to use and starts at the beginning of
// the sequence.
//
// Arithmetic is done on uint32 and wraps modulo 2^32: from F(48) on, the
// values are F(i) mod 2^32 rather than the true sequence.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	prev     uint32
	prevPrev uint32
	// seeded counts how many of the two leading 1s have been emitted.
	seeded uint8
}

// New returns a Generator positioned at the start of the sequence.
func New() *Generator {
	return &Generator{}
}

// Next advances the generator and returns the next Fibonacci number.
// The first two calls after construction or Reset both return 1.
func (g *Generator) Next() uint32 {
	var fib uint32
	switch g.seeded {
	case 0:
		fib = 1
		g.prevPrev = fib
		g.seeded = 1
	case 1:
		fib = 1
		g.prev = fib
		g.seeded = 2
	default:
		fib = g.prev + g.prevPrev
		g.prevPrev = g.prev
		g.prev = fib
	}
	return fib
}

// Reset rewinds the generator so the next call to Next restarts the sequence.
func (g *Generator) Reset() {
	*g = Generator{}
}

// NextAndReset returns the next value like Next and, when reset is true,
// rewinds the generator afterwards. The returned value is always the one that
// was due; only later calls observe the reset.
func (g *Generator) NextAndReset(reset bool) uint32 {
	fib := g.Next()
	if reset {
		g.Reset()
	}
	return fib
}
