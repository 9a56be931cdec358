package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/minic/internal/compiler"
	"github.com/arnavsurve/minic/internal/compiler/lexer"
	"github.com/arnavsurve/minic/internal/compiler/parser"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

const (
	historyFile = ".minic_history"
	promptMain  = "minic> "
	promptCont  = "  ...> "
)

// repl: type a translation unit, analyze it on a blank line
var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Type a program interactively and analyze it",
	Args:  cobra.NoArgs,
	RunE:  replRun,
}

func replRun(cmd *cobra.Command, _ []string) error {
	opts, err := analyzerOptions(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "minic repl: enter a program, finish with an empty line. :quit to exit.")

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath, ok := historyPath(); ok {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		src, ok := readProgram(ln)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}

		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit":
			return nil
		}

		fmt.Fprintln(out, evalProgram(src, opts...))
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}


// historyPath locates the history file in the home directory. History is not
// kept when there is no home directory.
func historyPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, historyFile), true
}

// readProgram collects lines until an empty line arrives with every brace
// closed. The bool is false on EOF or abort.
func readProgram(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}

		if b.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			return line, true
		}
		if strings.TrimSpace(line) == "" {
			if b.Len() == 0 || braceDepth(b.String()) > 0 {
				continue
			}
			return b.String(), true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
}

// braceDepth counts unclosed '{' tokens in src.
func braceDepth(src string) int {
	depth := 0
	l := lexer.NewLexer(src)
	for tok := l.NextToken(); tok.Type != token.TokenEOF; tok = l.NextToken() {
		switch tok.Type {
		case token.TokenLBrace:
			depth++
		case token.TokenRBrace:
			depth--
		}
	}
	return depth
}

// evalProgram analyzes src in a fresh session and renders the outcome.
func evalProgram(src string, opts ...parser.Option) string {
	if err := compiler.CheckSource(src, opts...); err != nil {
		var aerr *parser.AnalysisError
		if errors.As(err, &aerr) {
			return fmt.Sprintf("✗ [%s] %v", aerr.Kind, aerr)
		}
		return fmt.Sprintf("✗ %v", err)
	}
	return "✔︎ analysis completed"
}
