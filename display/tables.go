package display

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/dep5/copyright"
)

// DecompositionTable renders one row per line of a parsed statement.
func DecompositionTable(input string, c copyright.Copyright) (string, error) {
	data := pterm.TableData{{"Input", "Kind", "Years", "Holder"}}
	if c.IsComplex() {
		data = append(data, []string{input, c.Kind().String(), "", c.String()})
	}
	for i, line := range c.Lines() {
		shown := ""
		if i == 0 {
			shown = input
		}
		var specs []string
		for _, s := range line.Years {
			specs = append(specs, s.String())
		}
		data = append(data, []string{shown, c.Kind().String(), strings.Join(specs, ", "), line.Holder})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// Count is a labelled number for SummaryTable.
type Count struct {
	Label string
	Value int
}

// SummaryTable renders counts as a two-column table.
func SummaryTable(counts []Count) (string, error) {
	data := pterm.TableData{{"", "Count"}}
	for _, c := range counts {
		data = append(data, []string{c.Label, strconv.Itoa(c.Value)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
