package script

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/getdynlabel/dynlabel/pkg/dynstring"
	"github.com/getdynlabel/dynlabel/pkg/logging"
)

// shell is what commands are handed to. Everything after -c is the raw
// command text from the expression.
const shell = "sh"

// ErrEmptyCommand is returned by Run when the expression had no command.
var ErrEmptyCommand = errors.New("script: empty command")

// Script executes one shell command expression as a dynstring.Source.
type Script struct {
	// Mode is poll or watch.
	Mode Mode
	// Interval is the poll period. Ignored in watch mode.
	Interval time.Duration
	// Cmd is the command passed to `sh -c`.
	Cmd string

	logger *slog.Logger
}

// New parses a script expression. It never fails; an expression with no
// command yields a Script whose Run returns ErrEmptyCommand.
func New(expr string, logger *slog.Logger) *Script {
	if logger == nil {
		logger = logging.Nop()
	}
	mode, interval, cmd := Parse(expr)
	return &Script{Mode: mode, Interval: interval, Cmd: cmd, logger: logger}
}

// Factory returns a dynstring.SourceFactory that builds a Script per
// expression, all sharing the given logger.
func Factory(logger *slog.Logger) dynstring.SourceFactory {
	return func(expr string) dynstring.Source {
		return New(expr, logger)
	}
}

// Run executes the script until ctx is cancelled (poll mode) or the process
// exits (watch mode).
func (s *Script) Run(ctx context.Context, emit func(dynstring.Output)) error {
	if s.Cmd == "" {
		return ErrEmptyCommand
	}
	if s.Mode == ModeWatch {
		return s.watch(ctx, emit)
	}
	return s.poll(ctx, emit)
}

// poll reruns the command at the configured interval, starting immediately.
// A failing run emits whatever stderr said and keeps polling; only ctx
// cancellation ends the loop.
func (s *Script) poll(ctx context.Context, emit func(dynstring.Output)) error {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		s.runOnce(ctx, emit)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// runOnce executes one poll-mode invocation.
func (s *Script) runOnce(ctx context.Context, emit func(dynstring.Output)) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, "-c", s.Cmd)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if msg := strings.TrimRight(stderr.String(), "\n"); msg != "" {
		emit(dynstring.Output{Stream: dynstring.StreamDiagnostic, Data: msg})
	}
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Debug("script run failed", "cmd", s.Cmd, "error", err)
		}
		return
	}

	emit(dynstring.Output{Stream: dynstring.StreamPrimary, Data: strings.TrimRight(stdout.String(), "\n")})
}

// watch starts the command once and forwards each output line as it is
// written. Returns when the process exits or ctx is cancelled.
func (s *Script) watch(ctx context.Context, emit func(dynstring.Output)) error {
	cmd := exec.CommandContext(ctx, shell, "-c", s.Cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", s.Cmd, err)
	}

	// The shell's children inherit the pipes, so a kill on cancellation is
	// not enough to guarantee EOF. Closing the read ends unblocks the
	// scanners regardless of what still holds the write ends.
	stopClose := context.AfterFunc(ctx, func() {
		_ = stdout.Close()
		_ = stderr.Close()
	})
	defer stopClose()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			emit(dynstring.Output{Stream: dynstring.StreamDiagnostic, Data: scanner.Text()})
		}
	}()

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		emit(dynstring.Output{Stream: dynstring.StreamPrimary, Data: scanner.Text()})
	}

	// Both pipes reach EOF when the process exits; join the stderr reader
	// before Wait so emit is never called after Run returns.
	wg.Wait()

	err = cmd.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("watch %q: %w", s.Cmd, err)
	}
	return nil
}
