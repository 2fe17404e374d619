package overrides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/dep5/copyright"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/years"
)

var opts = years.Normalization{}

func TestCompileGlob(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*", "src/deep/file.c", true},
		{"src/*", "src/a/b.c", true},
		{"src/*", "srcs/a.c", false},
		{"src/*.c", "src/a/b.c", true},
		{"src/?.c", "src/a.c", true},
		{"src/?.c", "src/ab.c", false},
		{"a.c", "xa.c", false},
		{"a.c", "abc", false},
		{`weird\*name`, "weird*name", true},
		{`weird\*name`, "weirdXname", false},
		{`q\?`, "q?", true},
		{`back\\slash`, `back\slash`, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			re, err := compileGlob(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, re.MatchString(tt.path))
		})
	}

	for _, bad := range []string{`trailing\`, `bad\escape`} {
		_, err := compileGlob(bad)
		assert.True(t, errors.IsInvalidInputError(err), bad)
	}
}

func compiled(t *testing.T, w *Wildcard) *Wildcard {
	t.Helper()
	require.NoError(t, w.Compile(opts))
	return w
}

func TestWildcard_Matches(t *testing.T) {
	w := compiled(t, &Wildcard{
		Patterns:  []string{"vendor/*"},
		License:   "MIT  OR Apache-2.0",
		Copyright: "2018-2022, Jane Doe",
	})

	computed := copyright.Parse("2019, 2020, Jane Doe", opts)

	assert.True(t, w.Matches("vendor/x/y.go", "MIT OR Apache-2.0", computed))
	assert.False(t, w.Matches("src/y.go", "MIT OR Apache-2.0", computed), "pattern must match")
	assert.False(t, w.Matches("vendor/y.go", "MIT", computed), "license must agree")
	assert.False(t, w.Matches("vendor/y.go", "MIT OR Apache-2.0",
		copyright.Parse("2017, Jane Doe", opts)), "statement must contain the computed one")
	assert.False(t, w.Matches("vendor/y.go", "MIT OR Apache-2.0",
		copyright.Parse("2020, John Roe", opts)), "holders must agree")
}

func TestWildcard_CompileRequiresPatterns(t *testing.T) {
	err := (&Wildcard{License: "MIT"}).Compile(opts)
	assert.True(t, errors.IsInvalidInputError(err))
}

func TestSet_Match(t *testing.T) {
	first := compiled(t, &Wildcard{Patterns: []string{"a/*"}, License: "MIT", Copyright: "2020, A"})
	second := compiled(t, &Wildcard{Patterns: []string{"*"}, License: "MIT", Copyright: "2020, A"})
	set := &Set{Wildcards: []*Wildcard{first, second}}

	got, ok := set.Match("a/b", "MIT", copyright.Parse("2020, A", opts))
	require.True(t, ok)
	assert.Same(t, first, got)

	got, ok = set.Match("c", "MIT", copyright.Parse("2020, A", opts))
	require.True(t, ok)
	assert.Same(t, second, got)

	_, ok = set.Match("c", "GPL-2.0", copyright.Parse("2020, A", opts))
	assert.False(t, ok)

	var nilSet *Set
	_, ok = nilSet.Match("c", "MIT", copyright.Parse("2020, A", opts))
	assert.False(t, ok)
	assert.True(t, nilSet.Empty())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const tomlOverrides = `
[intro]
upstream_name = "example"
source = "https://example.com/example"

[[wildcards]]
patterns = ["third_party/*", "vendor/*"]
license = "BSD-3-Clause"
copyright = """
2010-2015, Upstream Authors
2016, Other Person
"""
comment = "bundled"
frobnicate = true

[[license_texts]]
license = """BSD-3-Clause
Redistribution and use in source and binary forms..."""
`

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "wildcards.toml", tomlOverrides)
	core, logs := observer.New(zapcore.WarnLevel)

	set, err := Load(path, opts, zap.New(core).Sugar())
	require.NoError(t, err)

	require.NotNil(t, set.Intro)
	assert.Equal(t, "example", set.Intro.UpstreamName)
	assert.Equal(t, "https://example.com/example", set.Intro.Header().Source)

	require.Len(t, set.Wildcards, 1)
	w := set.Wildcards[0]
	assert.Equal(t, []string{"third_party/*", "vendor/*"}, w.Patterns)
	assert.Equal(t, copyright.KindMultiline, w.Statement().Kind())
	assert.True(t, w.MatchesPath("vendor/lib/x.h"))

	para := w.Paragraph()
	assert.Equal(t, "2010-2015, Upstream Authors\n2016, Other Person", para.Copyright)
	assert.Equal(t, "bundled", para.Comment)

	require.Len(t, set.LicenseTexts, 1)
	assert.Equal(t, "BSD-3-Clause", set.LicenseTexts[0].Paragraph().License[:len("BSD-3-Clause")])

	require.Equal(t, 1, logs.FilterMessage("ignoring unknown key in overrides").Len())
	assert.Equal(t, "wildcards.frobnicate", logs.All()[0].ContextMap()["key"])
}

func TestLoadTOML_InvalidPattern(t *testing.T) {
	path := writeFile(t, "bad.toml", "[[wildcards]]\npatterns = [\"x\\\\\"]\nlicense = \"MIT\"\n")
	_, err := LoadTOML(path, opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wildcard 1")
}

const dep5Overrides = `Format: https://www.debian.org/doc/packaging-manuals/copyright-format/1.0/
Upstream-Name: example
Upstream-Contact: Jane Doe <jane@example.com>

Files: third_party/*
  vendor/*
Copyright: 2010-2015, Upstream Authors
License: BSD-3-Clause

License: BSD-3-Clause
  Redistribution and use in source and binary forms...
  .
  THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS
`

func TestLoadDEP5(t *testing.T) {
	path := writeFile(t, "copyright", dep5Overrides)

	set, err := Load(path, opts, nil)
	require.NoError(t, err)

	require.NotNil(t, set.Intro)
	assert.Equal(t, "Jane Doe <jane@example.com>", set.Intro.UpstreamContact)

	require.Len(t, set.Wildcards, 1)
	assert.Equal(t, []string{"third_party/*", "vendor/*"}, set.Wildcards[0].Patterns)
	assert.True(t, set.Wildcards[0].Matches("vendor/a.c", "BSD-3-Clause", copyright.Parse("2012, Upstream Authors", opts)))

	require.Len(t, set.LicenseTexts, 1)
	assert.Contains(t, set.LicenseTexts[0].License, "\n\nTHIS SOFTWARE")
}

func TestLoadDEP5_SkipsUnknownParagraphs(t *testing.T) {
	path := writeFile(t, "copyright", dep5Overrides+"\nComment: stray\n")
	core, logs := observer.New(zapcore.WarnLevel)

	set, err := LoadDEP5(path, opts, zap.New(core).Sugar())
	require.NoError(t, err)
	assert.Len(t, set.Wildcards, 1)
	assert.Len(t, set.LicenseTexts, 1)

	entries := logs.FilterMessage("ignoring paragraph without Files or License in overrides").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(15), entries[0].ContextMap()["line"])
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "absent.toml"), opts, nil)
	require.NoError(t, err)
	assert.True(t, set.Empty())
}
