package cli

import (
	"log/slog"
	"strings"

	"github.com/getdynlabel/dynlabel/pkg/dynstring"
	"github.com/getdynlabel/dynlabel/pkg/exprsource"
	"github.com/getdynlabel/dynlabel/pkg/script"
)

// exprPrefix routes an expression to the expr-lang evaluator instead of
// the shell.
const exprPrefix = "expr:"

// NewSourceFactory builds the factory used by render and run. Expressions
// starting with "expr:" are evaluated with pkg/exprsource; everything else
// runs as a shell command via pkg/script.
func NewSourceFactory(logger *slog.Logger) dynstring.SourceFactory {
	scripts := script.Factory(logger)
	exprs := exprsource.Factory(exprsource.DefaultInterval, logger)

	return func(expression string) dynstring.Source {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(expression), exprPrefix); ok {
			return exprs(strings.TrimSpace(rest))
		}
		return scripts(expression)
	}
}
