package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bianca-ap01/ParserLR1/driver"
	"github.com/bianca-ap01/ParserLR1/engine"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var traceFlags = struct {
	tokens    *string
	inputFile *string
	pretty    *bool
	packed    *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "trace <grammar file path> [source]",
		Short: "Trace the shift-reduce parse of an input",
		Example: `  lr1 trace expr.lr1 --tokens "id + id * id"
  lr1 trace expr.lr1 "a + b * c"
  lr1 trace expr.lr1 --input-file input.txt --format table`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runTrace,
	}
	traceFlags.tokens = cmd.Flags().StringP("tokens", "t", "", "terminal names separated by blanks")
	traceFlags.inputFile = cmd.Flags().StringP("input-file", "i", "", "read the source from a file")
	traceFlags.pretty = cmd.Flags().Bool("pretty", false, "print the tree as indented text instead of ruled lines")
	traceFlags.packed = cmd.Flags().Bool("packed", false, "run on packed ACTION and GOTO tables")
	rootCmd.AddCommand(cmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	res, err := buildGrammar(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	in := engine.Input{
		MaxSteps: maxSteps(),
		Packed:   *traceFlags.packed,
	}
	switch {
	case cmd.Flags().Changed("tokens"):
		in.Tokens = driver.SplitNames(*traceFlags.tokens)
	case *traceFlags.inputFile != "":
		src, err := os.ReadFile(*traceFlags.inputFile)
		if err != nil {
			return fmt.Errorf("Cannot open the source file %s: %w", *traceFlags.inputFile, err)
		}
		in.Source = string(src)
	case len(args) > 1:
		in.Source = args[1]
	default:
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		in.Source = string(src)
	}

	tr, err := engine.Trace(res.Compiled(), in)
	var parseErr *driver.ParseError
	if err != nil && (tr == nil || !errors.As(err, &parseErr)) {
		return err
	}

	w := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		jerr := writeJSON(w, &traceResponse{
			Result: tr,
			Error:  engine.Describe(err),
		})
		if jerr != nil {
			return jerr
		}
	case formatTable:
		pterm.DefaultTable.WithHasHeader().WithData(stepTableData(tr.Steps)).Render()
	default:
		writeSteps(w, tr.Steps)
	}
	if err != nil {
		return err
	}

	switch format {
	case formatTable:
		root := pterm.NewTreeFromLeveledList(treeLevels(tr.Tree, pterm.LeveledList{}, 0))
		pterm.DefaultTree.WithRoot(root).Render()
	case formatText:
		fmt.Fprintln(w)
		writeTree(w, tr.Tree, *traceFlags.pretty)
	}
	return nil
}

type traceResponse struct {
	Result *engine.TraceResult   `json:"result"`
	Error  *engine.ErrorResponse `json:"error,omitempty"`
}

func writeTree(w io.Writer, tree *driver.Node, pretty bool) {
	if pretty {
		driver.PrettyPrint(w, tree)
		return
	}
	driver.PrintTree(w, tree)
}

func formatStack(stack []driver.StackEntry) string {
	var b strings.Builder
	for i, e := range stack {
		if i > 0 {
			b.WriteString(" ")
		}
		if e.Symbol != driver.StackBottom {
			fmt.Fprintf(&b, "%v ", e.Symbol)
		}
		fmt.Fprintf(&b, "%v", e.State)
	}
	return b.String()
}

func formatInput(step *driver.Step) string {
	ts := append([]string{step.Lookahead}, step.Remaining...)
	if step.Lookahead != "$" {
		ts = append(ts, "$")
	}
	return strings.Join(ts, " ")
}

func writeSteps(w io.Writer, steps []*driver.Step) {
	for i, s := range steps {
		fmt.Fprintf(w, "%4v  %v | %v | %v\n", i+1, formatStack(s.Stack), formatInput(s), s.ActionText)
	}
}

func stepTableData(steps []*driver.Step) pterm.TableData {
	data := pterm.TableData{
		{"step", "stack", "input", "action"},
	}
	for i, s := range steps {
		data = append(data, []string{
			fmt.Sprintf("%v", i+1),
			formatStack(s.Stack),
			formatInput(s),
			s.ActionText,
		})
	}
	return data
}
