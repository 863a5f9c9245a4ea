// Package primality implements the trial-division primality check used to
// decide the prime token of the fibbuzz sequence.
//
// Apart from 2 and 3, every prime has the form 6k±1, so only those candidates
// up to sqrt(n) are tried. The check runs in constant memory, which is why no
// sieve is kept even for the demonstration listing.
package primality
