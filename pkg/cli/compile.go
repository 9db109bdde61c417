package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getdynlabel/dynlabel/pkg/template"
)

var compileCmd = &cobra.Command{
	Use:   "compile <template>",
	Short: "Print the compiled segment list for a template",
	Long: `Compile shows how a template splits into static and dynamic segments
without running anything. Useful for checking delimiter placement.`,
	Example: `  dynlabel compile "Uptime: {{uptime -p}}"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompile(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, input string) error {
	segments := template.Compile(input)
	out := cmd.OutOrStdout()

	if len(segments) == 0 {
		fmt.Fprintln(out, "no segments")
		return nil
	}
	for i, seg := range segments {
		fmt.Fprintf(out, "%d\t%s\t%q\n", i, seg.Kind, seg.Text)
	}
	return nil
}
