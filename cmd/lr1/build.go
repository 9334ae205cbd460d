package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bianca-ap01/ParserLR1/driver"
	"github.com/bianca-ap01/ParserLR1/engine"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var buildFlags = struct {
	compiled *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "build [grammar file path]",
		Short: "Build the canonical LR(1) automaton and tables of a grammar",
		Example: `  lr1 build expr.lr1
  lr1 build expr.lr1 --format json > expr-report.json
  lr1 build expr.lr1 --compiled expr.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBuild,
	}
	buildFlags.compiled = cmd.Flags().StringP("compiled", "c", "", "also write the compiled tables to this file")
	rootCmd.AddCommand(cmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}
	res, err := buildGrammar(grmPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	if *buildFlags.compiled != "" {
		err := writeJSONFile(*buildFlags.compiled, res.Compiled())
		if err != nil {
			return fmt.Errorf("Cannot write the compiled grammar: %w", err)
		}
	}

	for _, w := range res.Warnings() {
		pterm.Warning.Println(w.Error())
	}

	w := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		return writeJSON(w, res)
	case formatTable:
		renderReportTables(res.Report)
		return nil
	}
	err = writeReport(w, res.Report)
	if err != nil {
		return err
	}
	return writeTableSize(w, res)
}

func writeTableSize(w io.Writer, res *engine.BuildResult) error {
	packed, err := driver.NewPackedGrammar(res.Compiled())
	if err != nil {
		return err
	}
	dense, packedCount := packed.EntryCounts()
	fmt.Fprintf(w, "\n# Tables\n\n%v states, %v ACTION and GOTO entries, %v when packed\n", len(res.States), dense, packedCount)
	return nil
}

func buildGrammar(path string, stdin io.Reader) (*engine.BuildResult, error) {
	text, err := readGrammarText(path, stdin)
	if err != nil {
		return nil, err
	}
	res, err := engine.BuildLR1(text)
	if err != nil {
		return nil, attachSource(err, path)
	}
	logger.Debugf("grammar %v: %v states, %v conflicts", path, len(res.States), len(res.Conflicts))
	return res, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))
	return nil
}

func writeJSONFile(path string, v interface{}) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeJSON(f, v)
}
