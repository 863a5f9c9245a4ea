package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/fibbuzz/internal/cli"
	"github.com/agbru/fibbuzz/internal/config"
	apperrors "github.com/agbru/fibbuzz/internal/errors"
	"github.com/agbru/fibbuzz/internal/fibonacci"
	"github.com/agbru/fibbuzz/internal/fizzbuzz"
	"github.com/agbru/fibbuzz/internal/logging"
	"github.com/agbru/fibbuzz/internal/metrics"
	"github.com/agbru/fibbuzz/internal/ui"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/agbru/fibbuzz/internal/app"

// Application represents the fibbuzz application instance.
type Application struct {
	Config    config.AppConfig
	Sequence  fizzbuzz.Sequence
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSequence sets the value source used for both the demonstration and the
// main loop. It defaults to a fresh fibonacci.Generator.
func WithSequence(seq fizzbuzz.Sequence) AppOption {
	return func(a *Application) { a.Sequence = seq }
}

// WithLogger replaces the default stderr console logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name. Usage problems have already been reported
// on errWriter when an error is returned; map it to an exit status with
// apperrors.ExitCode.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "fibbuzz"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Sequence == nil {
		app.Sequence = fibonacci.New()
	}
	if app.Logger == nil {
		level := zerolog.WarnLevel
		if cfg.Verbose {
			level = zerolog.DebugLevel
		}
		if cfg.LogFormat == config.LogFormatJSON {
			app.Logger = logging.NewLogger(errWriter, "fibbuzz", level)
		} else {
			app.Logger = logging.NewConsoleLogger(errWriter, "fibbuzz", level)
		}
	}
	return app, nil
}

// Run prints the demonstration blocks, then the sequence, to out and returns
// the process exit status.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "fibbuzz.run",
		trace.WithAttributes(
			attribute.Int64("fibbuzz.n", int64(a.Config.N)),
			attribute.Bool("fibbuzz.demo", !a.Config.NoDemo),
		))
	defer span.End()

	a.Logger.Debug("configuration parsed",
		logging.Uint32("n", a.Config.N),
		logging.Bool("demo", !a.Config.NoDemo),
		logging.Bool("color", a.Config.Color),
		logging.String("metrics_file", a.Config.MetricsFile))

	start := time.Now()
	tally := metrics.NewTally()
	err := a.writeAll(ctx, out, tally)
	if err == nil && a.Config.MetricsFile != "" {
		err = apperrors.WrapError(tally.WriteTextfile(a.Config.MetricsFile), "write metrics file %s", a.Config.MetricsFile)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if apperrors.IsContextError(err) {
			a.Logger.Error("sequence interrupted", err, logging.Uint32("n", a.Config.N))
		} else {
			a.Logger.Error("sequence failed", err, logging.Uint32("n", a.Config.N))
		}
		return apperrors.ExitCode(err)
	}

	a.Logger.Info("sequence complete",
		logging.Uint32("n", a.Config.N),
		logging.String("elapsed", cli.FormatExecutionDuration(time.Since(start))))
	return apperrors.ExitSuccess
}

// writeAll writes the demonstration blocks and the main sequence through a
// single buffer.
func (a *Application) writeAll(ctx context.Context, out io.Writer, rec fizzbuzz.Recorder) error {
	bw := bufio.NewWriter(out)

	if !a.Config.NoDemo {
		if err := cli.DisplayPrimes(bw, a.Config.PrimeLimit, a.Config.RowWidth); err != nil {
			return apperrors.WrapError(err, "write prime demonstration")
		}
		if err := cli.DisplayFibonacci(ctx, bw, a.Sequence, a.Config.N); err != nil {
			bw.Flush()
			if apperrors.IsContextError(err) {
				return err
			}
			return apperrors.WrapError(err, "write Fibonacci demonstration")
		}
		// The main loop must start the sequence from the beginning.
		a.Sequence.Reset()
	}

	opts := fizzbuzz.Options{Recorder: rec}
	if a.Config.Color {
		opts.Styler = ui.NewPalette(out, ui.DarkTheme)
	}

	if err := fizzbuzz.Run(ctx, bw, a.Sequence, a.Config.N, opts); err != nil {
		bw.Flush()
		if apperrors.IsContextError(err) {
			return err
		}
		return apperrors.WrapError(err, "write sequence")
	}
	return apperrors.WrapError(bw.Flush(), "flush output")
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
