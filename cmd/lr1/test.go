package main

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/bianca-ap01/ParserLR1/tester"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	workers *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test file path>|<test directory path>",
		Short:   "Test a grammar",
		Example: `  lr1 test expr.lr1 test`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.workers = cmd.Flags().IntP("workers", "w", runtime.NumCPU(), "number of test cases run at once")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	res, err := buildGrammar(args[0], cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}

	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(args[1])
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				pterm.Error.Println(fmt.Sprintf("Failed to read a test case or a directory: %v\n%v", c.FilePath, c.Error))
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Grammar:  res.Compiled(),
		Cases:    cs,
		MaxSteps: maxSteps(),
		Workers:  *testFlags.workers,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(cmd.OutOrStdout(), r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
