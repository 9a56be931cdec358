package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/minic/internal/compiler/symbols"
	"github.com/arnavsurve/minic/internal/config"
)

//go:embed templates/*
var tplFS embed.FS

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [project-name]",
	Short: "Scaffold a new minic project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var (
			targetDir   string
			projectName string
		)

		// targetDir is where files go, projectName is for templating
		if len(args) == 1 {
			targetDir = args[0]
			projectName = filepath.Base(args[0])
		} else {
			targetDir = "."
			cwd, err := os.Getwd()
			cobra.CheckErr(err)
			projectName = filepath.Base(cwd)
		}

		// If we are making a new subdirectory, ensure it doesn't already exist
		if targetDir != "." {
			if _, err := os.Stat(targetDir); err == nil {
				cobra.CheckErr(fmt.Errorf("directory %q already exists", targetDir))
			}

			err := os.MkdirAll(targetDir, 0755)
			cobra.CheckErr(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "↪ scaffolding new project %q ...\n", projectName)

		err := os.MkdirAll(filepath.Join(targetDir, "src"), 0755)
		cobra.CheckErr(err)

		data := map[string]any{
			"ProjectName": projectName,
			"Library":     symbols.DefaultLibrary().Names(),
		}

		files := map[string]string{
			"templates/hello.c.tpl":   "src/hello.c",
			"templates/minic.yml.tpl": config.DefaultFile,
			"templates/gitignore.tpl": ".gitignore",
		}

		for tplPath, outName := range files {
			outPath := filepath.Join(targetDir, outName)
			writeTpl(tplPath, outPath, data)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ project %q initialized!\n", projectName)
	},
}

// writeTpl loads tplName from tplFS, executes it with data, and writes to outPath
func writeTpl(tplName, outPath string, data any) {
	t, err := template.ParseFS(tplFS, tplName)
	cobra.CheckErr(err)

	f, err := os.Create(outPath)
	cobra.CheckErr(err)
	defer f.Close()

	err = t.Execute(f, data)
	cobra.CheckErr(err)
}
