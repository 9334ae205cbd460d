package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bianca-ap01/ParserLR1/driver"
	"github.com/bianca-ap01/ParserLR1/engine"
	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file path>",
		Short: "Build a grammar once and trace lines of input interactively",
		Long: `repl reads lines of input and traces each of them.
A line is tokenized with the lexicon of the grammar, or split at blanks into terminal
names when the grammar has no lexicon. The following commands are available:
  :tokens <names>  trace a line of terminal names
  :steps           toggle printing of the steps
  :report          print the report of the grammar
  :quit            leave (also <ctrl>D)`,
		Example: `  lr1 repl expr.lr1`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	res, err := buildGrammar(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	for _, w := range res.Warnings() {
		pterm.Warning.Println(w.Error())
	}

	rl, err := readline.New("lr1> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	intp := &interpreter{
		grammar:  res,
		maxSteps: maxSteps(),
		out:      cmd.OutOrStdout(),
	}
	pterm.Info.Println(fmt.Sprintf("Grammar %v loaded: %v states. Quit with <ctrl>D", args[0], len(res.States)))
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		quit, err := intp.eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	return nil
}

type interpreter struct {
	grammar   *engine.BuildResult
	maxSteps  int
	showSteps bool
	out       io.Writer
}

// eval runs one line. The first result is true when the line asks to leave.
func (intp *interpreter) eval(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	in := engine.Input{
		MaxSteps: intp.maxSteps,
	}
	switch {
	case line == ":quit" || line == ":q":
		return true, nil
	case line == ":steps":
		intp.showSteps = !intp.showSteps
		return false, nil
	case line == ":report":
		return false, writeReport(intp.out, intp.grammar.Report)
	case strings.HasPrefix(line, ":tokens"):
		in.Tokens = driver.SplitNames(strings.TrimPrefix(line, ":tokens"))
	case strings.HasPrefix(line, ":"):
		return false, fmt.Errorf("unknown command: %v", line)
	default:
		in.Source = line
	}

	tr, err := engine.Trace(intp.grammar.Compiled(), in)
	if tr != nil && intp.showSteps {
		writeSteps(intp.out, tr.Steps)
	}
	if err != nil {
		return false, err
	}
	logger.Debugf("accepted in %v steps", len(tr.Steps))
	driver.PrintTree(intp.out, tr.Tree)
	return false, nil
}

// treeLevels flattens a tree for pterm's tree printer.
func treeLevels(node *driver.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	if node == nil {
		return ll
	}
	text := node.KindName
	if node.Text != "" {
		text = fmt.Sprintf("%v %q", node.KindName, node.Text)
	}
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  text,
	})
	for _, c := range node.Children {
		ll = treeLevels(c, ll, level+1)
	}
	return ll
}
