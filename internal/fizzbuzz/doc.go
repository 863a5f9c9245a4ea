// Package fizzbuzz applies the fibbuzz rules to Fibonacci values and drives
// the main output loop.
//
// For each value the rules are checked in order and every match appends its
// word to the line:
//
//   - divisible by 3: "Buzz"
//   - divisible by 5: "Fizz"
//   - prime: "BuzzFizz"
//
// A value that matches nothing is printed in decimal followed by a space.
// The Buzz-before-Fizz order and the "BuzzFizz" prime word are the program's
// established output and are kept as is.
package fizzbuzz
