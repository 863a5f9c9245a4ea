// Package app wires configuration, logging, metrics and output together and
// runs the fibbuzz command.
package app
