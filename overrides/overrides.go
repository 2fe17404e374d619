// Package overrides holds hand-written DEP5 paragraphs that take precedence
// over generated ones. A file matched by an override is left out of the
// generated output when the override's statement already covers it.
package overrides

import (
	"regexp"
	"strings"

	"github.com/teranos/dep5/copyright"
	"github.com/teranos/dep5/deb822"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/years"
)

// Intro replaces the generated header paragraph.
type Intro struct {
	Format          string `toml:"format"`
	UpstreamName    string `toml:"upstream_name"`
	UpstreamContact string `toml:"upstream_contact"`
	Source          string `toml:"source"`
	Disclaimer      string `toml:"disclaimer"`
	Comment         string `toml:"comment"`
	License         string `toml:"license"`
	Copyright       string `toml:"copyright"`
}

// Header renders the intro as a DEP5 header paragraph.
func (i Intro) Header() deb822.HeaderParagraph {
	return deb822.HeaderParagraph{
		Format:          i.Format,
		UpstreamName:    i.UpstreamName,
		UpstreamContact: i.UpstreamContact,
		Source:          i.Source,
		Disclaimer:      i.Disclaimer,
		Comment:         i.Comment,
		License:         i.License,
		Copyright:       i.Copyright,
	}
}

// Wildcard is an explicit Files paragraph.
type Wildcard struct {
	Patterns  []string `toml:"patterns"`
	License   string   `toml:"license"`
	Copyright string   `toml:"copyright"`
	Comment   string   `toml:"comment"`

	statement copyright.Copyright
	globs     []*regexp.Regexp
}

// Compile parses the copyright statement and the file patterns. It must be
// called before Matches.
func (w *Wildcard) Compile(opts years.Normalization) error {
	if len(w.Patterns) == 0 {
		return errors.NewInvalidInputError("wildcard has no patterns")
	}
	w.globs = w.globs[:0]
	for _, p := range w.Patterns {
		re, err := compileGlob(p)
		if err != nil {
			return err
		}
		w.globs = append(w.globs, re)
	}
	w.statement = copyright.Parse(copyright.Cleanup(w.Copyright), opts)
	return nil
}

// Statement is the parsed copyright of the override.
func (w *Wildcard) Statement() copyright.Copyright { return w.statement }

// MatchesPath reports whether any pattern matches path.
func (w *Wildcard) MatchesPath(path string) bool {
	for _, re := range w.globs {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Matches reports whether the override accounts for a file: a pattern matches
// its path, the licenses agree and the override's statement contains the one
// computed for the file.
func (w *Wildcard) Matches(path, license string, computed copyright.Copyright) bool {
	if !w.MatchesPath(path) {
		return false
	}
	if normalizeSpace(w.License) != normalizeSpace(license) {
		return false
	}
	return w.statement.Contains(computed)
}

// Paragraph renders the override as written.
func (w *Wildcard) Paragraph() deb822.FilesParagraph {
	return deb822.FilesParagraph{
		Files:     w.Patterns,
		Copyright: strings.TrimSpace(w.Copyright),
		License:   strings.TrimSpace(w.License),
		Comment:   strings.TrimSpace(w.Comment),
	}
}

// LicenseText is a standalone license paragraph.
type LicenseText struct {
	License string `toml:"license"`
	Comment string `toml:"comment"`
}

// Paragraph renders the license text.
func (l LicenseText) Paragraph() deb822.LicenseParagraph {
	return deb822.LicenseParagraph{License: strings.TrimSpace(l.License), Comment: strings.TrimSpace(l.Comment)}
}

// Set is a loaded override file.
type Set struct {
	Path         string
	Intro        *Intro
	Wildcards    []*Wildcard
	LicenseTexts []LicenseText
}

// Empty reports whether the set carries nothing.
func (s *Set) Empty() bool {
	return s == nil || (s.Intro == nil && len(s.Wildcards) == 0 && len(s.LicenseTexts) == 0)
}

// Match returns the first wildcard accounting for the file.
func (s *Set) Match(path, license string, computed copyright.Copyright) (*Wildcard, bool) {
	if s == nil {
		return nil, false
	}
	for _, w := range s.Wildcards {
		if w.Matches(path, license, computed) {
			return w, true
		}
	}
	return nil, false
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
