// Package pipeline turns a bill of materials and an override file into a
// DEP5 copyright document.
package pipeline

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/dep5/bom"
	"github.com/teranos/dep5/config"
	"github.com/teranos/dep5/copyright"
	"github.com/teranos/dep5/deb822"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/logger"
	"github.com/teranos/dep5/overrides"
	"github.com/teranos/dep5/tree"
	"github.com/teranos/dep5/upstream"
	"github.com/teranos/dep5/years"
)

// HeaderOptions fill the header when the override file has no intro.
type HeaderOptions struct {
	UpstreamName    string
	UpstreamContact string
	Source          string
	// DetectUpstream fills missing name and source from the git origin remote
	// of the repository holding the bill of materials.
	DetectUpstream bool
}

// Options configure one run.
type Options struct {
	SPDXPath        string
	OverridesPath   string
	OmitNoCopyright bool
	Strict          bool
	Years           years.Normalization
	Header          HeaderOptions
}

// OptionsFromConfig maps a loaded configuration onto generator options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SPDXPath:        cfg.Input.SPDX,
		OverridesPath:   cfg.Input.Overrides,
		OmitNoCopyright: cfg.Input.OmitNoCopyright,
		Strict:          cfg.Output.Strict,
		Years:           cfg.Normalization(),
		Header: HeaderOptions{
			UpstreamName:    cfg.Header.UpstreamName,
			UpstreamContact: cfg.Header.UpstreamContact,
			Source:          cfg.Header.Source,
			DetectUpstream:  cfg.Header.DetectUpstream,
		},
	}
}

// Stats summarize a run.
type Stats struct {
	Records    int
	Overridden int
	Nodes      int
	Metadata   int
	Paragraphs int
}

// Result is a generated document with its rendering.
type Result struct {
	Document deb822.Document
	Text     string
	Stats    Stats
}

// Generator runs the whole conversion.
type Generator struct {
	Options Options
	Logger  *zap.SugaredLogger
	// Verbosity selects the optional output categories that are logged:
	// stage timings and per-file override decisions.
	Verbosity int
}

// NewGenerator returns a generator logging under the "pipeline" component at
// the global verbosity.
func NewGenerator(opts Options) *Generator {
	return &Generator{Options: opts, Logger: logger.ComponentLogger("pipeline"), Verbosity: logger.Verbosity}
}

// Run reads the inputs and builds the document. Cancellation is checked
// between stages.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	log := g.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	start := time.Now()
	opts := g.Options
	timing := logger.ShouldOutput(g.Verbosity, logger.OutputTiming)
	stageStart := start
	stageDone := func(stage string) {
		if timing {
			log.Debugw("stage finished",
				logger.FieldStage, stage,
				logger.FieldDurationMS, time.Since(stageStart).Milliseconds())
		}
		stageStart = time.Now()
	}

	records, err := bom.ReadTagValueFile(opts.SPDXPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read bill of materials")
	}
	records = bom.Normalize(records, opts.OmitNoCopyright)
	log.Infow("read bill of materials",
		logger.FieldPath, opts.SPDXPath,
		logger.FieldCount, len(records))
	stageDone("read")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set, err := overrides.Load(opts.OverridesPath, opts.Years, log)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load overrides")
	}
	decisions := logger.ShouldOutput(g.Verbosity, logger.OutputFileDecisions)
	remaining, overridden := applyOverrides(records, set, opts.Years, decisions, log)
	log.Infow("applied overrides",
		logger.FieldPath, opts.OverridesPath,
		"wildcards", len(set.Wildcards),
		"overridden", overridden)
	stageDone("overrides")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := tree.Build(remaining, log.Named("tree"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build copyright tree")
	}
	t.PropagateMetadata()
	stats := t.Stats()
	log.Infow("built copyright tree",
		logger.FieldNodes, stats.Nodes,
		"metadata", stats.Metadata)
	stageDone("tree")

	if opts.Strict {
		if _, err := t.Validate(opts.Years); err != nil {
			return nil, errors.WithHint(
				errors.Wrap(err, "strict mode"),
				"fix the statement in the bill of materials or enable a year heuristic")
		}
		stageDone("validate")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	generated := renderGenerated(t.Paragraphs(opts.Years))

	doc := deb822.Document{}
	doc.Paragraphs = append(doc.Paragraphs, g.header(set, log))
	for _, w := range set.Wildcards {
		doc.Paragraphs = append(doc.Paragraphs, w.Paragraph())
	}
	doc.Paragraphs = append(doc.Paragraphs, generated...)
	for _, lt := range set.LicenseTexts {
		doc.Paragraphs = append(doc.Paragraphs, lt.Paragraph())
	}

	text, err := doc.Format()
	if err != nil {
		return nil, errors.Wrap(err, "failed to render copyright file")
	}

	stageDone("render")
	log.Infow("generated copyright file", logger.FieldParagraphs, len(doc.Paragraphs))
	if timing {
		log.Debugw("run finished", logger.FieldDurationMS, time.Since(start).Milliseconds())
	}

	return &Result{
		Document: doc,
		Text:     text,
		Stats: Stats{
			Records:    len(records),
			Overridden: overridden,
			Nodes:      stats.Nodes,
			Metadata:   stats.Metadata,
			Paragraphs: len(generated),
		},
	}, nil
}

// applyOverrides drops the records an override already accounts for. With
// decisions set every covered file is logged.
func applyOverrides(records []bom.FileRecord, set *overrides.Set, opts years.Normalization, decisions bool, log *zap.SugaredLogger) ([]bom.FileRecord, int) {
	if set.Empty() || len(set.Wildcards) == 0 {
		return records, 0
	}
	remaining := make([]bom.FileRecord, 0, len(records))
	overridden := 0
	for _, rec := range records {
		computed := copyright.Parse(copyright.Cleanup(rec.CopyrightText), opts)
		license := tree.NewLicenseSet(rec.Licenses()).Expression()
		if w, ok := set.Match(rec.Path, license, computed); ok {
			overridden++
			if decisions {
				log.Debugw("file covered by override",
					logger.FieldFile, rec.Path,
					logger.FieldLicense, license,
					logger.FieldPatterns, w.Patterns)
			}
			continue
		}
		remaining = append(remaining, rec)
	}
	return remaining, overridden
}

// renderGenerated converts tree paragraphs and orders them by their text.
func renderGenerated(paras []tree.Paragraph) []deb822.Paragraph {
	type rendered struct {
		para deb822.FilesParagraph
		text string
	}
	items := make([]rendered, 0, len(paras))
	for _, p := range paras {
		fp := deb822.FilesParagraph{
			Files:     p.Files,
			Copyright: p.Copyright.String(),
			License:   p.License.Expression(),
		}
		// Field errors surface when the whole document is formatted
		text, _ := deb822.FormatParagraph(fp)
		items = append(items, rendered{para: fp, text: text})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].text < items[j].text })

	out := make([]deb822.Paragraph, 0, len(items))
	for _, it := range items {
		out = append(out, it.para)
	}
	return out
}

func (g *Generator) header(set *overrides.Set, log *zap.SugaredLogger) deb822.Paragraph {
	if set.Intro != nil {
		return set.Intro.Header()
	}

	h := g.Options.Header
	header := deb822.NewHeaderParagraph()
	header.UpstreamName = h.UpstreamName
	header.UpstreamContact = h.UpstreamContact
	header.Source = h.Source

	if h.DetectUpstream && (header.UpstreamName == "" || header.Source == "") {
		dir := filepath.Dir(g.Options.SPDXPath)
		info, err := upstream.Discover(dir)
		switch {
		case err == nil:
			if header.UpstreamName == "" {
				header.UpstreamName = info.Name
			}
			if header.Source == "" {
				header.Source = info.Source
			}
		case errors.IsNotFoundError(err):
			log.Debugw("no upstream repository found", logger.FieldPath, dir)
		default:
			log.Warnw("upstream discovery failed", logger.FieldError, err)
		}
	}
	return header
}
