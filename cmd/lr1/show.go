package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	spec "github.com/bianca-ap01/ParserLR1/spec/grammar"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "show <report file path>",
		Short:   "Print a report written by `build --format json` in a readable format",
		Example: `  lr1 show expr-report.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	report, err := readReport(args[0])
	if err != nil {
		return err
	}

	if format == formatTable {
		renderReportTables(report)
		return nil
	}
	return writeReport(cmd.OutOrStdout(), report)
}

func readReport(path string) (*spec.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	report := &spec.Report{}
	err = json.Unmarshal(d, report)
	if err != nil {
		return nil, err
	}

	return report, nil
}
