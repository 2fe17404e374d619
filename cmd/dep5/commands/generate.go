package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/dep5/config"
	"github.com/teranos/dep5/display"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/logger"
	"github.com/teranos/dep5/pipeline"
	"github.com/teranos/dep5/watch"
)

// NewGenerateCmd builds the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a DEP5 copyright file",
		Long: `Read the bill of materials and the override file and write the DEP5
copyright file to --output, or to stdout when no output is configured.

With --watch the file is regenerated whenever an input changes, until
interrupted.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Write the copyright file here instead of stdout")
	cmd.Flags().Bool("watch", false, "Regenerate when the inputs change")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loaded
	if err := cfg.Validate(); err != nil {
		return errors.WithHint(err, "run 'dep5 config show' to see the resolved configuration")
	}
	gen := pipeline.NewGenerator(pipeline.OptionsFromConfig(cfg))

	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return generateOnce(contextOf(cmd), cmd, gen, cfg.Output.Path)
	}

	if cfg.Output.Path == "" {
		logger.Warnw("watching without --output, every regeneration is written to stdout")
	}
	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndGenerate(logger.WithComponent(ctx, "watch"), cmd, gen, cfg)
}

func watchAndGenerate(ctx context.Context, cmd *cobra.Command, gen *pipeline.Generator, cfg *config.Config) error {
	log := logger.LoggerFromContext(ctx)
	if err := generateOnce(ctx, cmd, gen, cfg.Output.Path); err != nil {
		log.Errorw("generation failed, waiting for changes", logger.FieldError, err)
	}

	w, err := watch.New([]string{cfg.Input.SPDX, cfg.Input.Overrides},
		time.Duration(cfg.Watch.DebounceMS)*time.Millisecond,
		logger.ComponentLogger("watch"))
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnChange(func(ctx context.Context, changed []string) error {
		log.Infow("inputs changed, regenerating", "files", changed)
		return generateOnce(ctx, cmd, gen, cfg.Output.Path)
	})

	log.Infow("watching inputs",
		"spdx", cfg.Input.SPDX,
		"overrides", cfg.Input.Overrides)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// generateOnce runs the generator and writes its output.
func generateOnce(ctx context.Context, cmd *cobra.Command, gen *pipeline.Generator, outputPath string) error {
	res, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	if err := writeOutput(ctx, cmd.OutOrStdout(), outputPath, res.Text); err != nil {
		return err
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputSummary) {
		table, err := display.SummaryTable([]display.Count{
			{Label: "files", Value: res.Stats.Records},
			{Label: "overridden", Value: res.Stats.Overridden},
			{Label: "tree nodes", Value: res.Stats.Nodes},
			{Label: "distinct statements", Value: res.Stats.Metadata},
			{Label: "generated paragraphs", Value: res.Stats.Paragraphs},
		})
		if err == nil {
			fmt.Fprint(cmd.ErrOrStderr(), table)
		}
	}
	return nil
}

func writeOutput(ctx context.Context, stdout io.Writer, path, text string) error {
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), config.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(text), config.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	logger.LoggerFromContext(ctx).Infow("wrote copyright file",
		logger.FieldPath, path,
		logger.FieldSize, len(text))
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
