package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	spec "github.com/bianca-ap01/ParserLR1/spec/grammar"
	"github.com/pterm/pterm"
)

const reportTemplate = `# Conflicts

{{ printConflictSummary . }}

# Terminals

{{ range $i, $t := .Terminals -}}
{{ printf "%4v %v" $i $t }}
{{ end }}
# Productions

{{ range .Productions -}}
{{ printf "%4v %v" .Index .Text }}
{{ end }}
# FIRST and FOLLOW

{{ range .NonTerminals -}}
{{ printFirstFollow . }}
{{ end }}
# States
{{ range .States }}
## State {{ .Number }}

{{ range .Kernel -}}
{{ printItem . }}
{{ end }}
{{ printActions .Number -}}
{{ printGoTos .Number }}
{{ end }}
{{- range .Conflicts -}}
{{ printConflict . }}
{{ end -}}`

// writeReport prints a report in a readable format.
func writeReport(w io.Writer, report *spec.Report) error {
	actionSyms := append(append([]string{}, report.Terminals...), "$")

	fns := template.FuncMap{
		"printConflictSummary": func(report *spec.Report) string {
			var srCount, rrCount int
			for _, c := range report.Conflicts {
				switch c.Type {
				case spec.ConflictTypeShiftReduce:
					srCount++
				case spec.ConflictTypeReduceReduce:
					rrCount++
				}
			}
			if srCount == 0 && rrCount == 0 {
				return "No conflict"
			}
			var b strings.Builder
			if srCount > 0 {
				fmt.Fprintf(&b, "%v shift/reduce %v resolved by shifting.\n", srCount, plural(srCount, "conflict", "conflicts"))
			}
			if rrCount > 0 {
				fmt.Fprintf(&b, "%v reduce/reduce %v resolved by production order.\n", rrCount, plural(rrCount, "conflict", "conflicts"))
			}
			return strings.TrimSuffix(b.String(), "\n")
		},
		"printFirstFollow": func(nonTerm string) string {
			return fmt.Sprintf("%v\n    FIRST:  {%v}\n    FOLLOW: {%v}", nonTerm, strings.Join(report.First[nonTerm], ", "), strings.Join(report.Follow[nonTerm], ", "))
		},
		"printItem": func(item *spec.Item) string {
			return formatItem(item)
		},
		"printActions": func(state int) string {
			var b strings.Builder
			acts := report.Action[state]
			for _, sym := range actionSyms {
				act, ok := acts[sym]
				if !ok {
					continue
				}
				fmt.Fprintf(&b, "%-6v %v\n", sym, act)
			}
			return b.String()
		},
		"printGoTos": func(state int) string {
			var b strings.Builder
			gotos := report.GoTo[state]
			for _, nonTerm := range report.NonTerminals {
				next, ok := gotos[nonTerm]
				if !ok {
					continue
				}
				fmt.Fprintf(&b, "goto   %4v on %v\n", next, nonTerm)
			}
			return b.String()
		},
		"printConflict": func(c *spec.Conflict) string {
			return fmt.Sprintf("%v conflict in state %v on %v: %v adopted, %v discarded", c.Type, c.State, c.Symbol, c.Adopted, c.Discarded)
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(reportTemplate)
	if err != nil {
		return err
	}

	err = tmpl.Execute(w, report)
	if err != nil {
		return err
	}

	return nil
}

func formatItem(item *spec.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v ->", item.LHS)
	for i, sym := range item.RHS {
		if i == item.Dot {
			fmt.Fprintf(&b, " ・")
		}
		fmt.Fprintf(&b, " %v", sym)
	}
	if item.Dot >= len(item.RHS) {
		fmt.Fprintf(&b, " ・")
	}
	return fmt.Sprintf("%4v [%v, %v]", item.Production, b.String(), item.LookAhead)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// actionTableData lays out ACTION and GOTO side by side, one row per state.
func actionTableData(report *spec.Report) pterm.TableData {
	actionSyms := append(append([]string{}, report.Terminals...), "$")

	header := []string{"state"}
	header = append(header, actionSyms...)
	header = append(header, report.NonTerminals...)
	data := pterm.TableData{header}
	for _, s := range report.States {
		row := []string{fmt.Sprintf("%v", s.Number)}
		for _, sym := range actionSyms {
			row = append(row, report.Action[s.Number][sym])
		}
		for _, nonTerm := range report.NonTerminals {
			if next, ok := report.GoTo[s.Number][nonTerm]; ok {
				row = append(row, fmt.Sprintf("%v", next))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}
	return data
}

func setTableData(report *spec.Report) pterm.TableData {
	data := pterm.TableData{
		{"non-terminal", "nullable", "FIRST", "FOLLOW"},
	}
	nullable := map[string]bool{}
	for _, n := range report.Nullable {
		nullable[n] = true
	}
	for _, nonTerm := range report.NonTerminals {
		data = append(data, []string{
			nonTerm,
			fmt.Sprintf("%v", nullable[nonTerm]),
			strings.Join(report.First[nonTerm], " "),
			strings.Join(report.Follow[nonTerm], " "),
		})
	}
	return data
}

func stateTableData(report *spec.Report) pterm.TableData {
	data := pterm.TableData{
		{"state", "items"},
	}
	for _, s := range report.States {
		items := make([]string, len(s.Items))
		for i, item := range s.Items {
			items[i] = strings.TrimSpace(formatItem(item))
		}
		data = append(data, []string{fmt.Sprintf("%v", s.Number), strings.Join(items, "\n")})
	}
	return data
}

func renderReportTables(report *spec.Report) {
	pterm.Info.Println("Canonical collection")
	pterm.DefaultTable.WithHasHeader().WithData(stateTableData(report)).Render()
	pterm.Info.Println("FIRST and FOLLOW")
	pterm.DefaultTable.WithHasHeader().WithData(setTableData(report)).Render()
	pterm.Info.Println("ACTION and GOTO")
	pterm.DefaultTable.WithHasHeader().WithData(actionTableData(report)).Render()
}

// sortedKeys returns the keys of a transition row other than `state`, in ascending order.
func sortedKeys(row map[string]int) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		if k == "state" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
