package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getdynlabel/dynlabel/pkg/dynstring"
)

var renderTimeout time.Duration

var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Live-render a template to stdout",
	Long: `Render composes the template and prints the full string once per update,
starting with the initial snapshot (static text with expression positions
still empty). Runs until interrupted or until --timeout elapses.`,
	Example: `  dynlabel render "Uptime: {{uptime -p}}"
  dynlabel render "{{1000:date +%H:%M:%S}}" --timeout 5s
  dynlabel render "host: {{expr:hostname()}}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args[0])
	},
}

func init() {
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 0, "Stop after this duration (0 = run until interrupted)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, input string) error {
	logger := newLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if renderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, renderTimeout)
		defer cancel()
	}

	out := cmd.OutOrStdout()
	ds := dynstring.NewWithOptions(ctx, input, NewSourceFactory(logger), func(s string) bool {
		fmt.Fprintln(out, s)
		return true
	}, dynstring.Options{Logger: logger})

	<-ds.Done()
	ds.Stop()
	return nil
}
