package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/dep5/display"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/pipeline"
)

// ErrOutdated is returned by diff when the existing file differs.
var ErrOutdated = errors.New("copyright file is out of date")

// NewDiffCmd builds the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <existing-copyright-file>",
		Short: "Compare a generated copyright file with an existing one",
		Long: `Generate the copyright file and print a line diff against an existing
one. Exits non-zero when they differ, so it can guard CI.`,
		Args: cobra.ExactArgs(1),
		RunE: runDiff,
	}
	addInputFlags(cmd)
	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	existing, err := os.ReadFile(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrNotFound, "%s does not exist", args[0])
		}
		return errors.Wrapf(err, "failed to read %s", args[0])
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	res, err := pipeline.NewGenerator(pipeline.OptionsFromConfig(loaded)).Run(contextOf(cmd))
	if err != nil {
		return err
	}

	rendered, changed := display.LineDiff(string(existing), res.Text)
	if !changed {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ %s is up to date\n", args[0])
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return errors.WithHintf(errors.Wrap(ErrOutdated, args[0]),
		"run 'dep5 generate -o %s' to update it", args[0])
}
