package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/minic/internal/compiler"
)

// check: analyze .c sources
var CheckCmd = &cobra.Command{
	Use:   "check <source.c>...",
	Short: "Analyze source files for syntax and semantic errors",
	Args:  cobra.MinimumNArgs(1),
	RunE:  checkRun,
}

func checkRun(cmd *cobra.Command, args []string) error {
	opts, err := analyzerOptions(cmd)
	if err != nil {
		return err
	}

	failed := 0
	for _, src := range args {
		fmt.Fprintf(cmd.OutOrStdout(), "↪ checking %q ...\n", src)
		if err := compiler.CheckFile(src, opts...); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✔︎ %s: analysis completed\n", src)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed analysis", failed, len(args))
	}
	return nil
}
