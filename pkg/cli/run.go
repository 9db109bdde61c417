package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getdynlabel/dynlabel/pkg/config"
	"github.com/getdynlabel/dynlabel/pkg/dynstring"
	"github.com/getdynlabel/dynlabel/pkg/logging"
)

var (
	runFile    string
	runTimeout time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every label from a label file",
	Long: `Run starts one live composition per label in the file and prints
"<name>: <value>" whenever any label updates. Runs until interrupted or
until --timeout elapses.`,
	Example: `  dynlabel run -f labels.yaml
  dynlabel run -f labels.yaml --timeout 30s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runLabels(cmd)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "labels.yaml", "Label file to run")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Stop after this duration (0 = run until interrupted)")
	rootCmd.AddCommand(runCmd)
}

func runLabels(cmd *cobra.Command) error {
	file, err := config.Load(runFile)
	if err != nil {
		return err
	}

	// File-level log settings win over flag defaults so a label file is
	// self-contained.
	level, format := logLevel, logFormat
	if file.Log.Level != "" {
		level = file.Log.Level
	}
	if file.Log.Format != "" {
		format = file.Log.Format
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(level),
		Format: logging.ParseFormat(format),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runTimeout)
		defer cancel()
	}

	factory := NewSourceFactory(logger)
	out := newLineWriter(cmd.OutOrStdout())

	instances := make([]*dynstring.DynamicString, 0, len(file.Labels))
	for _, label := range file.Labels {
		name := label.Name
		ds := dynstring.NewWithOptions(ctx, label.Template, factory, func(s string) bool {
			out.printf("%s: %s\n", name, s)
			return true
		}, dynstring.Options{Logger: logger})
		instances = append(instances, ds)
		logger.Debug("label started", "name", name, "instance", ds.ID())
	}

	<-ctx.Done()
	for _, ds := range instances {
		ds.Stop()
	}
	return nil
}

// lineWriter serializes writes from the per-label delivery goroutines.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{w: w}
}

func (lw *lineWriter) printf(format string, args ...any) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	fmt.Fprintf(lw.w, format, args...)
}
