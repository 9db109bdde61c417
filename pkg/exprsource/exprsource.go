package exprsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/getdynlabel/dynlabel/pkg/dynstring"
	"github.com/getdynlabel/dynlabel/pkg/logging"
)

// DefaultInterval is the evaluation period used when none is given.
const DefaultInterval = time.Second

// Source re-evaluates one expr-lang expression on a fixed interval and
// emits each result as a primary event.
type Source struct {
	expr     string
	interval time.Duration
	logger   *slog.Logger

	programMu sync.Mutex
	program   *vm.Program
}

// New creates a source for the given expression. An interval of zero or
// less falls back to DefaultInterval. The expression is not compiled here;
// a bad expression surfaces from Run.
func New(expression string, interval time.Duration, logger *slog.Logger) *Source {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Source{expr: expression, interval: interval, logger: logger}
}

// Factory returns a dynstring.SourceFactory building one Source per
// expression, all evaluated at the given interval.
func Factory(interval time.Duration, logger *slog.Logger) dynstring.SourceFactory {
	return func(expression string) dynstring.Source {
		return New(expression, interval, logger)
	}
}

// environment builds the evaluation environment. A fresh map per Run keeps
// concurrent sources from sharing mutable state.
func environment() map[string]any {
	return map[string]any{
		"now": time.Now,
		"env": os.Getenv,
		"hostname": func() string {
			name, err := os.Hostname()
			if err != nil {
				return ""
			}
			return name
		},
	}
}

// Run evaluates the expression immediately and then at every interval until
// ctx is cancelled. Compile and evaluation errors terminate the source.
func (s *Source) Run(ctx context.Context, emit func(dynstring.Output)) error {
	env := environment()
	program, err := s.compile(env)
	if err != nil {
		return fmt.Errorf("compile %q: %w", s.expr, err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		result, err := expr.Run(program, env)
		if err != nil {
			return fmt.Errorf("eval %q: %w", s.expr, err)
		}
		emit(dynstring.Output{Stream: dynstring.StreamPrimary, Data: formatResult(result)})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// compile returns the cached program, compiling on first use.
func (s *Source) compile(env map[string]any) (*vm.Program, error) {
	s.programMu.Lock()
	defer s.programMu.Unlock()

	if s.program != nil {
		return s.program, nil
	}
	program, err := expr.Compile(s.expr, expr.Env(env))
	if err != nil {
		return nil, err
	}
	s.program = program
	return program, nil
}

// formatResult renders an evaluation result for label display.
func formatResult(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
