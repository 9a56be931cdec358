package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavsurve/minic/internal/compiler/lexer"
	"github.com/arnavsurve/minic/internal/compiler/parser"
	"github.com/arnavsurve/minic/internal/compiler/token"
)

// SourceExt is the extension expected on source files.
const SourceExt = ".c"

// CheckFile reads a source file and analyzes it.
func CheckFile(srcPath string, opts ...parser.Option) error {
	if err := validateExtension(srcPath); err != nil {
		return err
	}

	content, err := readSource(srcPath)
	if err != nil {
		return err
	}

	if err := CheckSource(content, opts...); err != nil {
		return fmt.Errorf("%s:%w", srcPath, err)
	}
	return nil
}

// CheckSource analyzes src in a fresh session.
func CheckSource(src string, opts ...parser.Option) error {
	p := parser.NewParser(lexer.NewLexer(src), opts...)
	return p.Analyze()
}

// Tokens lexes src, EOF included.
func Tokens(src string) []token.Token {
	return lexer.NewLexer(src).Tokens()
}

// ReadTokens lexes a source file.
func ReadTokens(srcPath string) ([]token.Token, error) {
	content, err := readSource(srcPath)
	if err != nil {
		return nil, err
	}
	return Tokens(content), nil
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source must have %s extension: %s", SourceExt, path)
	}
	return nil
}

func readSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}
