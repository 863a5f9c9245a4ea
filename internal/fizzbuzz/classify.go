package fizzbuzz

import (
	"strconv"

	"github.com/agbru/fibbuzz/internal/primality"
)

// Rules is the set of rules a value matched.
type Rules uint8

const (
	// RuleBuzz matches values divisible by 3.
	RuleBuzz Rules = 1 << iota
	// RuleFizz matches values divisible by 5.
	RuleFizz
	// RulePrime matches prime values.
	RulePrime
)

// Words printed for each rule.
const (
	WordBuzz  = "Buzz"
	WordFizz  = "Fizz"
	WordPrime = "BuzzFizz"
)

// orderedRules lists the rules in output order.
var orderedRules = [...]struct {
	rule Rules
	word string
}{
	{RuleBuzz, WordBuzz},
	{RuleFizz, WordFizz},
	{RulePrime, WordPrime},
}

// Has reports whether r contains every rule in other.
func (r Rules) Has(other Rules) bool { return r&other == other }

// String returns a short label for a single rule, used as a metric label.
func (r Rules) String() string {
	switch r {
	case RuleBuzz:
		return "buzz"
	case RuleFizz:
		return "fizz"
	case RulePrime:
		return "prime"
	case 0:
		return "plain"
	}
	return "rules(" + strconv.Itoa(int(r)) + ")"
}

// Classify returns the rules matched by fib.
func Classify(fib uint32) Rules {
	var r Rules
	if fib%3 == 0 {
		r |= RuleBuzz
	}
	if fib%5 == 0 {
		r |= RuleFizz
	}
	if primality.IsPrime(fib) {
		r |= RulePrime
	}
	return r
}

// AppendToken appends the text printed for fib, without its newline, to dst.
func AppendToken(dst []byte, fib uint32) []byte {
	return appendToken(dst, fib, Classify(fib), nil)
}

func appendToken(dst []byte, fib uint32, rules Rules, styler Styler) []byte {
	if rules == 0 {
		dst = strconv.AppendUint(dst, uint64(fib), 10)
		return append(dst, ' ')
	}
	for _, o := range orderedRules {
		if !rules.Has(o.rule) {
			continue
		}
		if styler != nil {
			dst = append(dst, styler.Style(o.rule, o.word)...)
		} else {
			dst = append(dst, o.word...)
		}
	}
	return dst
}

// Token returns the text printed for fib, without its newline.
func Token(fib uint32) string {
	return string(AppendToken(nil, fib))
}
