package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bianca-ap01/ParserLR1/engine"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var nfa2dfaFlags = struct {
	regex   *string
	accepts *[]string
}{}

func init() {
	regex2nfaCmd := &cobra.Command{
		Use:     "regex2nfa <pattern>",
		Short:   "Compile a regular expression into a Thompson NFA",
		Example: `  lr1 regex2nfa "(a|b)*abb" --format json > nfa.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runRegex2NFA,
	}
	rootCmd.AddCommand(regex2nfaCmd)

	nfa2dfaCmd := &cobra.Command{
		Use:   "nfa2dfa [NFA file path]",
		Short: "Determinize an NFA by the subset construction",
		Example: `  lr1 nfa2dfa nfa.json
  lr1 nfa2dfa --regex "(a|b)*abb" --accepts abb,aabb,ab`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNFA2DFA,
	}
	nfa2dfaFlags.regex = nfa2dfaCmd.Flags().StringP("regex", "r", "", "compile a pattern instead of reading an NFA")
	nfa2dfaFlags.accepts = nfa2dfaCmd.Flags().StringSliceP("accepts", "a", nil, "run the DFA on these inputs")
	rootCmd.AddCommand(nfa2dfaCmd)
}

func runRegex2NFA(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	n, err := engine.Regex2NFA(args[0])
	if err != nil {
		return err
	}
	logger.Debugf("pattern %q: %v states", args[0], len(n.States))

	w := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		return writeJSON(w, n)
	case formatTable:
		pterm.DefaultTable.WithHasHeader().WithData(nfaTableData(n)).Render()
		return nil
	}
	writeNFA(w, n)
	return nil
}

func runNFA2DFA(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	var n *engine.NFAResult
	if *nfa2dfaFlags.regex != "" {
		n, err = engine.Regex2NFA(*nfa2dfaFlags.regex)
	} else {
		var path string
		if len(args) > 0 {
			path = args[0]
		}
		n, err = readNFA(path, cmd.InOrStdin())
	}
	if err != nil {
		return err
	}

	d, err := engine.NFA2DFA(n)
	if err != nil {
		return err
	}
	logger.Debugf("subset construction: %v NFA states, %v DFA states", len(n.States), len(d.States))

	w := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		err := writeJSON(w, d)
		if err != nil {
			return err
		}
	case formatTable:
		pterm.DefaultTable.WithHasHeader().WithData(dfaTableData(d)).Render()
	default:
		writeDFA(w, d)
	}

	for _, input := range *nfa2dfaFlags.accepts {
		if d.Accepts(input) {
			pterm.Info.Println(fmt.Sprintf("%q accepted", input))
		} else {
			pterm.Warning.Println(fmt.Sprintf("%q rejected", input))
		}
	}
	return nil
}

func readNFA(path string, stdin io.Reader) (*engine.NFAResult, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the NFA file %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	n := &engine.NFAResult{}
	err = json.Unmarshal(d, n)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the NFA: %w", err)
	}
	return n, nil
}

func formatInts(ss []int) string {
	texts := make([]string, len(ss))
	for i, s := range ss {
		texts[i] = fmt.Sprintf("%v", s)
	}
	return strings.Join(texts, " ")
}

func writeNFA(w io.Writer, n *engine.NFAResult) {
	fmt.Fprintf(w, "states:   %v\n", len(n.States))
	fmt.Fprintf(w, "start:    %v\n", n.Start)
	fmt.Fprintf(w, "finals:   %v\n", formatInts(n.Finals))
	fmt.Fprintf(w, "alphabet: %v\n", strings.Join(n.Alphabet, " "))
	fmt.Fprintf(w, "\n# Transitions\n\n")
	for _, t := range n.Transitions {
		fmt.Fprintf(w, "%4v -%v-> %v\n", t.Src, t.Symbol, t.Dst)
	}
	fmt.Fprintf(w, "\n# Epsilon closures\n\n")
	for _, s := range n.States {
		fmt.Fprintf(w, "%4v {%v}\n", s, formatInts(n.EpsilonClosure[s]))
	}
}

func nfaTableData(n *engine.NFAResult) pterm.TableData {
	data := pterm.TableData{
		{"state", "transitions", "ε-closure"},
	}
	edges := map[int][]string{}
	for _, t := range n.Transitions {
		edges[t.Src] = append(edges[t.Src], fmt.Sprintf("%v→%v", t.Symbol, t.Dst))
	}
	for _, s := range n.States {
		label := fmt.Sprintf("%v", s)
		if s == n.Start {
			label = "→" + label
		}
		for _, f := range n.Finals {
			if s == f {
				label = label + "*"
			}
		}
		data = append(data, []string{
			label,
			strings.Join(edges[s], " "),
			fmt.Sprintf("{%v}", formatInts(n.EpsilonClosure[s])),
		})
	}
	return data
}

func writeDFA(w io.Writer, d *engine.DFAResult) {
	fmt.Fprintf(w, "start:    %v\n", d.Start)
	fmt.Fprintf(w, "finals:   %v\n", formatInts(d.Finals))
	fmt.Fprintf(w, "alphabet: %v\n", strings.Join(d.Alphabet, " "))
	fmt.Fprintf(w, "\n# States\n\n")
	for _, s := range d.States {
		mark := ""
		if s.Accepting {
			mark = " accepting"
		}
		fmt.Fprintf(w, "%4v %v%v\n", s.ID, s.NFAStates, mark)
	}
	fmt.Fprintf(w, "\n# Transitions\n\n")
	for _, row := range d.Transitions {
		for _, sym := range sortedKeys(row) {
			fmt.Fprintf(w, "%4v -%v-> %v\n", row["state"], sym, row[sym])
		}
	}
}

func dfaTableData(d *engine.DFAResult) pterm.TableData {
	header := []string{"state", "NFA states"}
	header = append(header, d.Alphabet...)
	data := pterm.TableData{header}
	for i, s := range d.States {
		label := fmt.Sprintf("%v", s.ID)
		if s.ID == d.Start {
			label = "→" + label
		}
		if s.Accepting {
			label = label + "*"
		}
		row := []string{label, s.NFAStates}
		for _, sym := range d.Alphabet {
			if next, ok := d.Transitions[i][sym]; ok {
				row = append(row, fmt.Sprintf("%v", next))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}
	return data
}
