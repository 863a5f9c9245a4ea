// Package config parses the command line and environment into an AppConfig.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/agbru/fibbuzz/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "FIBBUZZ_"

// Defaults for the demonstration printout.
const (
	DefaultPrimeLimit = 200
	DefaultRowWidth   = 10
)

// Log output formats accepted by --log-format.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// AppConfig holds the fully resolved application configuration.
type AppConfig struct {
	// N is the number of sequence lines to print.
	N uint32
	// NoDemo skips the prime and Fibonacci demonstration blocks.
	NoDemo bool
	// PrimeLimit is the exclusive upper bound of the prime demonstration.
	PrimeLimit uint32
	// RowWidth is the number of primes per demonstration row.
	RowWidth int
	// Color enables styled rule words.
	Color bool
	// MetricsFile, when set, receives the rule tally in Prometheus text format.
	MetricsFile string
	// Verbose lowers the log level to debug.
	Verbose bool
	// LogFormat selects console or JSON log entries on the error stream.
	LogFormat string
}

// Validate checks the values that flags and environment cannot constrain.
func (c AppConfig) Validate() error {
	if c.RowWidth < 1 {
		return apperrors.NewConfigError("row width must be at least 1, got %d", c.RowWidth)
	}
	if c.LogFormat != LogFormatConsole && c.LogFormat != LogFormatJSON {
		return apperrors.NewConfigError("log format must be %q or %q, got %q", LogFormatConsole, LogFormatJSON, c.LogFormat)
	}
	return nil
}

// PrintUsage writes the one-line usage message to w.
func PrintUsage(w io.Writer, programName string) {
	fmt.Fprintf(w, "Usage: %s [flags] <n>, where n is a non-negative integer less than 2^32.\n", programName)
}

// ParseCount parses the positional argument as a base-10 uint32. Signs,
// whitespace and values of 2^32 or more are rejected.
func ParseCount(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, apperrors.InvalidArgumentError{Value: s, Cause: err}
	}
	return uint32(v), nil
}

// ParseConfig parses the command-line arguments (without the program name)
// and applies environment overrides for flags that were not set.
//
// On a usage problem the usage message is written to errWriter and the
// returned error identifies the problem: flag.ErrHelp for -h/--help,
// apperrors.ArgumentCountError when there is not exactly one positional
// argument, apperrors.InvalidArgumentError when it is not a valid count, and
// apperrors.ConfigError for bad flag values.
//
// Parameters:
//   - programName: Name shown in the usage message.
//   - args: The arguments following the program name.
//   - errWriter: Destination of usage and flag errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: A usage error, or nil.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	primeLimit := uint64(DefaultPrimeLimit)

	fs.BoolVar(&cfg.NoDemo, "no-demo", false, "Skip the prime and Fibonacci demonstration blocks.")
	fs.Uint64Var(&primeLimit, "prime-limit", DefaultPrimeLimit, "Exclusive upper bound of the prime demonstration.")
	fs.IntVar(&cfg.RowWidth, "row-width", DefaultRowWidth, "Number of primes per demonstration row.")
	fs.BoolVar(&cfg.Color, "color", false, "Color the Buzz/Fizz words when writing to a terminal.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write the rule tally to this file in Prometheus text format.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging on stderr (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging on stderr.")
	fs.StringVar(&cfg.LogFormat, "log-format", LogFormatConsole, "Log entry format on stderr: console or json.")

	fs.Usage = func() {
		PrintUsage(errWriter, programName)
		fmt.Fprintln(errWriter, "\nFlags:")
		fs.PrintDefaults()
	}

	if arg, ok := negativeCount(fs, args); ok {
		_, err := ParseCount(arg)
		fmt.Fprintf(errWriter, "%s: %v\n", programName, err)
		PrintUsage(errWriter, programName)
		return cfg, err
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.ConfigError{Message: err.Error()}
	}

	if primeLimit > math.MaxUint32 {
		PrintUsage(errWriter, programName)
		return cfg, apperrors.NewConfigError("prime limit must be below 2^32, got %d", primeLimit)
	}
	cfg.PrimeLimit = uint32(primeLimit)

	applyEnvOverrides(&cfg, fs)
	if os.Getenv("NO_COLOR") != "" {
		cfg.Color = false
	}

	if err := cfg.Validate(); err != nil {
		PrintUsage(errWriter, programName)
		return cfg, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return cfg, apperrors.ArgumentCountError{Got: fs.NArg()}
	}

	n, err := ParseCount(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errWriter, "%s: %v\n", programName, err)
		PrintUsage(errWriter, programName)
		return cfg, err
	}
	cfg.N = n

	return cfg, nil
}

// negativeCount reports the first argument that flag parsing would reach as
// a flag name although it is a negative number, such as "-5". Flag values
// given as a separate argument are skipped, and scanning stops at "--" or at
// the first positional argument.
func negativeCount(fs *flag.FlagSet, args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || len(arg) < 2 || arg[0] != '-' {
			return "", false
		}
		if isNegativeInteger(arg) {
			return arg, true
		}
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			return "", false
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}
		i++
	}
	return "", false
}

func isNegativeInteger(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
