package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/fibbuzz/internal/errors"
	"github.com/agbru/fibbuzz/internal/fizzbuzz/mocks"
	"github.com/agbru/fibbuzz/internal/logging"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
)

const primesBelow200 = "Testing isPrime() up to 200\n" +
	"\n2 3 5 7 11 13 17 19 23 29 " +
	"\n31 37 41 43 47 53 59 61 67 71 " +
	"\n73 79 83 89 97 101 103 107 109 113 " +
	"\n127 131 137 139 149 151 157 163 167 173 " +
	"\n179 181 191 193 197 199 " +
	"\n\n"

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func newTestApp(t *testing.T, args []string, opts ...AppOption) (*Application, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	var stderr bytes.Buffer
	opts = append([]AppOption{WithLogger(logging.NewLogger(&stderr, "test", zerolog.DebugLevel))}, opts...)
	app, err := New(append([]string{"fibbuzz"}, args...), &stderr, opts...)
	if err != nil {
		t.Fatalf("New(%v) unexpected error: %v", args, err)
	}
	return app, &stderr
}

func TestNew_UsageErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"no arguments", []string{"fibbuzz"}, apperrors.ExitErrorUsage},
		{"too many arguments", []string{"fibbuzz", "1", "2"}, apperrors.ExitErrorUsage},
		{"non-numeric", []string{"fibbuzz", "ten"}, apperrors.ExitErrorInvalidArgument},
		{"negative", []string{"fibbuzz", "--", "-3"}, apperrors.ExitErrorInvalidArgument},
		{"too large", []string{"fibbuzz", "4294967296"}, apperrors.ExitErrorInvalidArgument},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			app, err := New(tt.args, &stderr)
			if err == nil {
				t.Fatalf("expected an error, got app %+v", app)
			}
			if got := apperrors.ExitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d", got, tt.wantCode)
			}
			if !strings.Contains(stderr.String(), "Usage: fibbuzz") {
				t.Errorf("usage should be written to the error stream, got %q", stderr.String())
			}
		})
	}
}

func TestNew_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := New([]string{"fibbuzz", "-h"}, &stderr)
	if !IsHelpError(err) {
		t.Fatalf("expected help error, got %v", err)
	}
}

func TestRun_FullOutput(t *testing.T) {
	app, _ := newTestApp(t, []string{"10"})
	var out bytes.Buffer

	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}

	want := primesBelow200 +
		"Testing nextFib() up to 10...\n1 1 2 3 5 8 13 21 34 55 \n\n" +
		"1 \n1 \nBuzzFizz\nBuzzBuzzFizz\nFizzBuzzFizz\n8 \nBuzzFizz\nBuzz\n34 \nFizz\n"
	if out.String() != want {
		t.Errorf("output mismatch\ngot:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestRun_ZeroCount(t *testing.T) {
	app, _ := newTestApp(t, []string{"0"})
	var out bytes.Buffer

	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}

	want := primesBelow200 + "Testing nextFib() up to 0...\n\n\n"
	if out.String() != want {
		t.Errorf("output mismatch\ngot:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestRun_NoDemo(t *testing.T) {
	app, _ := newTestApp(t, []string{"--no-demo", "5"})
	var out bytes.Buffer

	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}
	if want := "1 \n1 \nBuzzFizz\nBuzzBuzzFizz\nFizzBuzzFizz\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_CustomDemoLayout(t *testing.T) {
	app, _ := newTestApp(t, []string{"--prime-limit", "12", "--row-width", "2", "1"})
	var out bytes.Buffer

	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}
	want := "Testing isPrime() up to 12\n\n2 3 \n5 7 \n11 \n\n" +
		"Testing nextFib() up to 1...\n1 \n\n" +
		"1 \n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

// TestRun_ResetsBetweenDemoAndLoop checks that the demonstration draws n
// values, the sequence is then reset once, and the loop draws n more.
func TestRun_ResetsBetweenDemoAndLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	seq := mocks.NewMockSequence(ctrl)
	gomock.InOrder(
		seq.EXPECT().Next().Return(uint32(100)).Times(2),
		seq.EXPECT().Reset(),
		seq.EXPECT().Next().Return(uint32(7)).Times(2),
	)

	app, _ := newTestApp(t, []string{"--prime-limit", "0", "2"}, WithSequence(seq))
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}

	want := "Testing isPrime() up to 0\n\n\n" +
		"Testing nextFib() up to 2...\n100 100 \n\n" +
		"BuzzFizz\nBuzzFizz\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_NoDemoSkipsReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	seq := mocks.NewMockSequence(ctrl)
	seq.EXPECT().Next().Return(uint32(8)).Times(3)

	app, _ := newTestApp(t, []string{"--no-demo", "3"}, WithSequence(seq))
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}
	if want := "8 \n8 \n8 \n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fibbuzz.prom")
	app, _ := newTestApp(t, []string{"--no-demo", "--metrics-file", path, "10"})

	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{
		`fibbuzz_lines_total 10`,
		`fibbuzz_tokens_total{rule="prime"} 4`,
		`fibbuzz_tokens_total{rule="plain"} 4`,
	} {
		if !strings.Contains(string(content), want) {
			t.Errorf("metrics file should contain %q, got:\n%s", want, content)
		}
	}
}

func TestRun_MetricsFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "fibbuzz.prom")
	app, stderr := newTestApp(t, []string{"--no-demo", "--metrics-file", path, "3"})

	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitErrorGeneric {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(stderr.String(), "write metrics file") {
		t.Errorf("failure should be logged, got %q", stderr.String())
	}
}

func TestRun_Canceled(t *testing.T) {
	app, stderr := newTestApp(t, []string{"100"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if code := app.Run(ctx, &bytes.Buffer{}); code != apperrors.ExitErrorCanceled {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
	if !strings.Contains(stderr.String(), "sequence interrupted") {
		t.Errorf("interruption should be logged, got %q", stderr.String())
	}
}

func TestRun_WriteError(t *testing.T) {
	app, stderr := newTestApp(t, []string{"--no-demo", "3"})

	if code := app.Run(context.Background(), failingWriter{}); code != apperrors.ExitErrorGeneric {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitErrorGeneric)
	}
	if !strings.Contains(stderr.String(), "broken pipe") {
		t.Errorf("write failure should be logged, got %q", stderr.String())
	}
}

func TestRun_ColorOnPlainWriter(t *testing.T) {
	app, _ := newTestApp(t, []string{"--no-demo", "--color", "3"})
	var out bytes.Buffer

	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}
	// A buffer is not a terminal, so the palette renders plain words.
	if want := "1 \n1 \nBuzzFizz\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRun_VerboseLogsToErrWriter(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var stderr bytes.Buffer
	app, err := New([]string{"fibbuzz", "-v", "--no-demo", "2"}, &stderr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out bytes.Buffer
	if code := app.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}
	if !strings.Contains(stderr.String(), "sequence complete") {
		t.Errorf("verbose mode should log completion, got %q", stderr.String())
	}
	if strings.Contains(out.String(), "sequence complete") {
		t.Error("logs must not reach standard output")
	}
}

func TestRun_JSONLogFormat(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var stderr bytes.Buffer
	app, err := New([]string{"fibbuzz", "-v", "--log-format", "json", "--no-demo", "2"}, &stderr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	var last map[string]any
	for _, line := range lines {
		if err := json.Unmarshal([]byte(line), &last); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
	}
	if last["message"] != "sequence complete" || last["level"] != "info" {
		t.Errorf("last entry = %v, want info \"sequence complete\"", last)
	}
	if last["n"] != float64(2) {
		t.Errorf("n = %v, want 2", last["n"])
	}
}

func TestRun_DefaultLevelHidesCompletion(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var stderr bytes.Buffer
	app, err := New([]string{"fibbuzz", "--log-format", "json", "--no-demo", "2"}, &stderr)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if code := app.Run(context.Background(), &bytes.Buffer{}); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, apperrors.ExitSuccess)
	}
	if stderr.Len() != 0 {
		t.Errorf("a successful run logs nothing at the default level, got %q", stderr.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-version"}, true},
		{[]string{"10"}, false},
		{[]string{"--", "--version"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		tt := tt
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "fibbuzz "+Version) {
		t.Errorf("PrintVersion() = %q", buf.String())
	}
}
