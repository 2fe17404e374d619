package display

import (
	"strings"

	"github.com/pterm/pterm"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff compares two texts line by line and renders the result with "-",
// "+" and " " prefixes. changed is false when the texts are equal.
func LineDiff(from, to string) (rendered string, changed bool) {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix, style := " ", pterm.FgDefault
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, style, changed = "-", pterm.FgRed, true
		case diffpatch.DiffInsert:
			prefix, style, changed = "+", pterm.FgGreen, true
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(style.Sprint(prefix + strings.TrimSuffix(line, "\n")))
			sb.WriteString("\n")
		}
	}
	return sb.String(), changed
}
