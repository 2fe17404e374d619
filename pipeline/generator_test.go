package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/dep5/config"
	"github.com/teranos/dep5/copyright"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/logger"
	"github.com/teranos/dep5/years"
)

const summary = `SPDXVersion: SPDX-2.2
SPDXID: SPDXRef-DOCUMENT
DocumentName: example

FileName: ./src/a.c
SPDXID: SPDXRef-File-src-a-c
LicenseInfoInFile: MIT
FileCopyrightText: <text>SPDX-FileCopyrightText: 2020, Jane Doe</text>

FileName: ./src/b.c
SPDXID: SPDXRef-File-src-b-c
LicenseInfoInFile: MIT
FileCopyrightText: <text>SPDX-FileCopyrightText: 2020, Jane Doe</text>

FileName: ./src/c.c
SPDXID: SPDXRef-File-src-c-c
LicenseInfoInFile: MIT
FileCopyrightText: <text>Copyright 2021, Jane Doe</text>

FileName: ./vendor/lib.c
SPDXID: SPDXRef-File-vendor-lib-c
LicenseInfoInFile: BSD-3-Clause
FileCopyrightText: <text>2015, Upstream Authors</text>

FileName: ./docs/guide.md
SPDXID: SPDXRef-File-docs-guide-md
LicenseConcluded: CC-BY-4.0
FileCopyrightText: NONE
`

const wildcards = `
[intro]
upstream_name = "example"

[[wildcards]]
patterns = ["vendor/*"]
license = "BSD-3-Clause"
copyright = "2010-2015, Upstream Authors"

[[license_texts]]
license = """BSD-3-Clause
Redistribution and use in source and binary forms..."""
`

const expected = `Format: https://www.debian.org/doc/packaging-manuals/copyright-format/1.0/
Upstream-Name: example

Files: vendor/*
Copyright: 2010-2015, Upstream Authors
License: BSD-3-Clause

Files: docs/*
Copyright:
License: CC-BY-4.0

Files: src/a.c
  src/b.c
  src/c.c
Copyright: 2020-2021, Jane Doe
License: MIT

License: BSD-3-Clause
  Redistribution and use in source and binary forms...
`

func writeInputs(t *testing.T, dir, spdx, overrides string) Options {
	t.Helper()
	opts := Options{
		SPDXPath:      filepath.Join(dir, config.DefaultSPDXPath),
		OverridesPath: filepath.Join(dir, config.DefaultOverridesPath),
	}
	require.NoError(t, os.WriteFile(opts.SPDXPath, []byte(spdx), 0o644))
	if overrides != "" {
		require.NoError(t, os.WriteFile(opts.OverridesPath, []byte(overrides), 0o644))
	}
	return opts
}

func TestGenerator_Run(t *testing.T) {
	opts := writeInputs(t, t.TempDir(), summary, wildcards)
	g := &Generator{Options: opts, Logger: zaptest.NewLogger(t).Sugar()}

	res, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, expected, res.Text)
	assert.Equal(t, Stats{Records: 5, Overridden: 1, Nodes: 7, Metadata: 3, Paragraphs: 2}, res.Stats)
	assert.Len(t, res.Document.Paragraphs, 5)
}

func TestGenerator_OmitNoCopyright(t *testing.T) {
	opts := writeInputs(t, t.TempDir(), summary, wildcards)
	opts.OmitNoCopyright = true

	res, err := (&Generator{Options: opts}).Run(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, res.Text, "docs/")
	assert.Equal(t, 4, res.Stats.Records)
}

func TestGenerator_WithoutOverrides(t *testing.T) {
	opts := writeInputs(t, t.TempDir(), summary, "")
	opts.Header = HeaderOptions{UpstreamName: "configured", Source: "https://example.com/src"}

	res, err := (&Generator{Options: opts}).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Upstream-Name: configured\nSource: https://example.com/src\n")
	assert.Contains(t, res.Text, "Files: vendor/*\nCopyright: 2015, Upstream Authors\nLicense: BSD-3-Clause")
	assert.NotContains(t, res.Text, "Redistribution")
	assert.Zero(t, res.Stats.Overridden)
}

func TestGenerator_DetectsUpstream(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{"git@github.com:example/widget.git"}})
	require.NoError(t, err)

	opts := writeInputs(t, dir, summary, "")
	opts.Header.DetectUpstream = true
	opts.Header.UpstreamName = "kept"

	res, err := (&Generator{Options: opts}).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Upstream-Name: kept\nSource: https://github.com/example/widget\n")
}

func TestGenerator_Strict(t *testing.T) {
	const undecomposable = `SPDXVersion: SPDX-2.3
SPDXID: SPDXRef-DOCUMENT

FileName: ./a.c
SPDXID: SPDXRef-File-a-c
LicenseInfoInFile: MIT
FileCopyrightText: <text>Copyright 2020 Jane Doe</text>
`
	opts := writeInputs(t, t.TempDir(), undecomposable, "")

	res, err := (&Generator{Options: opts}).Run(context.Background())
	require.NoError(t, err, "permissive mode passes the statement through")
	assert.Contains(t, res.Text, "Copyright: 2020 Jane Doe\n")

	opts.Strict = true
	_, err = (&Generator{Options: opts}).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDecomposition))

	var decomp *copyright.DecompositionError
	require.True(t, errors.As(err, &decomp))
	assert.Equal(t, "2020 Jane Doe", decomp.Text)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestGenerator_YearHeuristics(t *testing.T) {
	const twoDigit = `SPDXVersion: SPDX-2.3
SPDXID: SPDXRef-DOCUMENT

FileName: ./a.c
SPDXID: SPDXRef-File-a-c
LicenseInfoInFile: MIT
FileCopyrightText: <text>1998-02, Jane Doe</text>
`
	opts := writeInputs(t, t.TempDir(), twoDigit, "")
	res, err := (&Generator{Options: opts}).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Copyright: 1998-02, Jane Doe\n", "ambiguous ranges pass through without the heuristic")

	opts.Years = years.Normalization{AllowMixedSizeImpliedCenturyRollover: true}

	res, err = (&Generator{Options: opts}).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Copyright: 1998-2002, Jane Doe\n")
}

func TestGenerator_SentinelLicense(t *testing.T) {
	const unlicensed = `SPDXVersion: SPDX-2.3
SPDXID: SPDXRef-DOCUMENT

FileName: ./README
SPDXID: SPDXRef-File-README
LicenseInfoInFile: NOASSERTION
FileCopyrightText: NONE

FileName: ./NOTES
SPDXID: SPDXRef-File-NOTES
FileCopyrightText: <text>2021, Jane Doe</text>
`
	opts := writeInputs(t, t.TempDir(), unlicensed, "")
	res, err := (&Generator{Options: opts}).Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, res.Text, "Files: README\nCopyright:\nLicense: NOASSERTION\n")
	assert.Contains(t, res.Text, "Files: NOTES\nCopyright: 2021, Jane Doe\nLicense: NOASSERTION\n")
	assert.NotContains(t, res.Text, "License:\n")
}

func TestGenerator_Errors(t *testing.T) {
	t.Run("missing bill of materials", func(t *testing.T) {
		_, err := (&Generator{Options: Options{SPDXPath: filepath.Join(t.TempDir(), "absent.spdx")}}).Run(context.Background())
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("cancelled", func(t *testing.T) {
		opts := writeInputs(t, t.TempDir(), summary, wildcards)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := (&Generator{Options: opts}).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Input.SPDX = "in.spdx"
	cfg.Input.Overrides = "copyright.in"
	cfg.Output.Strict = true
	cfg.Years.AllowCenturyGuess = true
	cfg.Header.DetectUpstream = true

	opts := OptionsFromConfig(cfg)
	assert.Equal(t, "in.spdx", opts.SPDXPath)
	assert.Equal(t, "copyright.in", opts.OverridesPath)
	assert.True(t, opts.Strict)
	assert.True(t, opts.Years.AllowCenturyGuess)
	assert.True(t, opts.Header.DetectUpstream)
}

func TestGenerator_VerbosityGatesDetailLogs(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		decisions int
		stages    []string
	}{
		{name: "quiet", verbosity: 0},
		{name: "timing only", verbosity: 2, stages: []string{"read", "overrides", "tree", "render"}},
		{name: "file decisions", verbosity: 3, decisions: 1, stages: []string{"read", "overrides", "tree", "render"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := writeInputs(t, t.TempDir(), summary, wildcards)
			core, logs := observer.New(zap.DebugLevel)
			g := &Generator{Options: opts, Logger: zap.New(core).Sugar(), Verbosity: tt.verbosity}

			_, err := g.Run(context.Background())
			require.NoError(t, err)

			covered := logs.FilterMessage("file covered by override").All()
			require.Len(t, covered, tt.decisions)
			for _, entry := range covered {
				fields := entry.ContextMap()
				assert.Equal(t, "vendor/lib.c", fields[logger.FieldFile])
				assert.Equal(t, "BSD-3-Clause", fields[logger.FieldLicense])
			}

			var stages []string
			for _, entry := range logs.FilterMessage("stage finished").All() {
				fields := entry.ContextMap()
				assert.Contains(t, fields, logger.FieldDurationMS)
				stages = append(stages, fields[logger.FieldStage].(string))
			}
			assert.Equal(t, tt.stages, stages)
			assert.Equal(t, len(tt.stages) > 0, logs.FilterMessage("run finished").Len() == 1)
		})
	}
}
