package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/minic/internal/compiler"
)

// tokens: dump the lexer output
var TokensCmd = &cobra.Command{
	Use:   "tokens <source.c>",
	Short: "Print the token stream of a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toks, err := compiler.ReadTokens(args[0])
		if err != nil {
			return err
		}
		for _, tok := range toks {
			fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\t%s\t%s\n", tok.Line, tok.Column, tok.Type, tok.Literal)
		}
		return nil
	},
}
