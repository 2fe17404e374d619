package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/dep5/copyright"
	"github.com/teranos/dep5/display"
	"github.com/teranos/dep5/errors"
)

// parsedStatement is the JSON form of one parse result.
type parsedStatement struct {
	Input     string              `json:"input"`
	Cleaned   string              `json:"cleaned"`
	Copyright copyright.Copyright `json:"copyright"`
	Error     string              `json:"error,omitempty"`
}

// NewParseCmd builds the parse command.
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [statement...]",
		Short: "Decompose copyright statements into years and holders",
		Long: `Parse each argument, or each line of stdin when no argument is given, the
way statements from the bill of materials are parsed.

Without --strict a statement that does not decompose is shown as complex.
With --strict the reason is printed with the offending column and the
command fails.`,
		RunE: runParse,
	}
	cmd.Flags().Bool("strict", false, "Report statements that do not decompose as errors")
	cmd.Flags().Bool("raw", false, "Skip the SPDX tag and marker cleanup")
	cmd.Flags().BoolP("json", "j", false, "Output results as JSON")
	addYearFlags(cmd)
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	raw, _ := cmd.Flags().GetBool("raw")
	opts := loaded.Normalization()

	inputs := args
	if len(inputs) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return errors.Wrap(err, "failed to read statements from stdin")
		}
	}
	if len(inputs) == 0 {
		return errors.WithHint(errors.NewInvalidInputError("no statements to parse"),
			"pass statements as arguments or pipe them on stdin")
	}

	var results []parsedStatement
	failures := 0
	for _, input := range inputs {
		text := input
		if !raw {
			text = copyright.Cleanup(input)
		}
		res := parsedStatement{Input: input, Cleaned: text}
		if strict {
			c, err := copyright.ParseStrict(text, opts)
			if err != nil {
				failures++
				res.Error = err.Error()
				res.Copyright = copyright.Complex(strings.TrimSpace(text))
				var decomp *copyright.DecompositionError
				if !display.ShouldOutputJSON(cmd) && errors.As(err, &decomp) {
					fmt.Fprintln(cmd.ErrOrStderr(), decomp.Err.Pretty())
				}
			} else {
				res.Copyright = c
			}
		} else {
			res.Copyright = copyright.Parse(text, opts)
		}
		results = append(results, res)
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		for _, res := range results {
			table, err := display.DecompositionTable(res.Input, res.Copyright)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), table)
		}
	}

	if failures > 0 {
		return errors.Wrapf(errors.ErrDecomposition, "%d of %d statements did not decompose", failures, len(inputs))
	}
	return nil
}
