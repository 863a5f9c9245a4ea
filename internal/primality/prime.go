package primality

import "math"

// IsPrime reports whether n is prime.
//
// The checks are applied in a fixed order: 1, even numbers and multiples of 3
// are rejected first, then every 6k±1 candidate up to sqrt(n)/6+1 is tried,
// and finally 2 and 3 are forced back to true. Because 0 is even and divisible
// by every candidate, IsPrime(0) is false. For every n >= 2 the result is the
// mathematical answer.
//
// Parameters:
//   - n: The value to test. Every uint32 is a valid input.
//
// Returns:
//   - bool: true if n is prime.
func IsPrime(n uint32) bool {
	limit := math.Sqrt(float64(n))
	prime := true

	if n == 1 {
		prime = false
	}
	if n%2 == 0 {
		prime = false
	}
	if n%3 == 0 {
		prime = false
	}

	for k := uint32(1); float64(k) <= limit/6+1; k++ {
		// A candidate equal to n itself is not a divisor that disproves primality.
		if c := 6*k - 1; n%c == 0 && n/c != 1 {
			prime = false
		}
		if c := 6*k + 1; n%c == 0 && n/c != 1 {
			prime = false
		}
	}

	if n == 2 || n == 3 {
		prime = true
	}
	return prime
}

// Primes calls yield with every value below the given bound for which IsPrime
// holds, in ascending order.
func Primes(below uint32, yield func(uint32)) {
	for i := uint32(0); i < below; i++ {
		if IsPrime(i) {
			yield(i)
		}
	}
}
