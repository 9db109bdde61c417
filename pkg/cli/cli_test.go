package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getdynlabel/dynlabel/pkg/exprsource"
	"github.com/getdynlabel/dynlabel/pkg/script"
)

// executeCommand runs the root command with args, capturing output.
// Commands share package-level state, so CLI tests stay sequential.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCompileCommand(t *testing.T) {
	out, err := executeCommand(t, "compile", "Uptime: {{uptime -p}}")
	require.NoError(t, err)
	assert.Equal(t, "0\tstatic\t\"Uptime: \"\n1\tdynamic\t\"uptime -p\"\n", out)
}

func TestCompileCommandEmptyTemplate(t *testing.T) {
	out, err := executeCommand(t, "compile", "")
	require.NoError(t, err)
	assert.Equal(t, "no segments\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dynlabel")
	assert.Contains(t, out, "commit:")
}

func TestRenderStaticTemplate(t *testing.T) {
	out, err := executeCommand(t, "render", "hello world", "--timeout", "300ms")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestRenderWithScriptExpression(t *testing.T) {
	out, err := executeCommand(t, "render", "v={{echo hi}}", "--timeout", "2s")
	require.NoError(t, err)
	// Initial snapshot first, then the script's first poll result.
	assert.Contains(t, out, "v=\n")
	assert.Contains(t, out, "v=hi\n")
}

func TestRunCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
labels:
  - name: left
    template: "static-left"
  - name: right
    template: "static-right"
`), 0o644))

	out, err := executeCommand(t, "run", "-f", path, "--timeout", "500ms")
	require.NoError(t, err)
	assert.Contains(t, out, "left: static-left\n")
	assert.Contains(t, out, "right: static-right\n")
}

func TestRunCommandMissingFile(t *testing.T) {
	_, err := executeCommand(t, "run", "-f", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestNewSourceFactoryDispatch(t *testing.T) {
	factory := NewSourceFactory(nil)

	src := factory("uptime -p")
	_, isScript := src.(*script.Script)
	assert.True(t, isScript, "plain expressions must run as shell scripts")

	src = factory("expr: 1 + 2")
	_, isExpr := src.(*exprsource.Source)
	assert.True(t, isExpr, "expr: expressions must use the expression evaluator")

	// The prefix must survive leading whitespace in the expression.
	src = factory("  expr:hostname()")
	_, isExpr = src.(*exprsource.Source)
	assert.True(t, isExpr)
}
