package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arnavsurve/minic/internal/compiler/parser"
	"github.com/arnavsurve/minic/internal/config"
)

var (
	configPath string
	traceFlag  bool
	strictFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "minic: syntax and semantic checker for a small C subset",
	Long: `minic checks programs written in a small C subset: scalar types,
functions, if/else, for and while, declarations, assignments and calls.

Commands:
  init    Scaffold a new minic project
  check   Analyze one or more (.c) source files
  tokens  Print the token stream of a source file
  repl    Type a program interactively and analyze it
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "project config file")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "print analysis events to stderr")
	rootCmd.PersistentFlags().BoolVar(&strictFlag, "strict", false, "require ';' after simple statements")

	rootCmd.AddCommand(InitCmd, CheckCmd, TokensCmd, ReplCmd)
}

// analyzerOptions merges the project config with the command line flags.
func analyzerOptions(cmd *cobra.Command) ([]parser.Option, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.ParserOptions()
	if err != nil {
		return nil, err
	}
	if strictFlag {
		opts = append(opts, parser.WithSeparatorPolicy(parser.SeparatorRequired))
	}
	if traceFlag || cfg.Trace {
		opts = append(opts, parser.WithTracer(parser.NewWriterTracer(cmd.ErrOrStderr(), false)))
	}
	return opts, nil
}
