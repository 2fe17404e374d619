package tree

import (
	"sort"
	"strconv"
	"strings"

	"github.com/teranos/dep5/atom"
	"github.com/teranos/dep5/copyright"
	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/logger"
	"github.com/teranos/dep5/years"
)

// Group is a run of consecutive covering entries sharing one identity.
type Group struct {
	Metadata MetadataID
	Patterns []string
}

// Groups returns the covering entries grouped by consecutive identity.
func (t *Tree) Groups() []Group {
	var groups []Group
	for _, e := range t.CoveringEntries() {
		if n := len(groups); n > 0 && groups[n-1].Metadata == e.Metadata {
			groups[n-1].Patterns = append(groups[n-1].Patterns, e.Pattern)
			continue
		}
		groups = append(groups, Group{Metadata: e.Metadata, Patterns: []string{e.Pattern}})
	}
	return groups
}

// Paragraph is one DEP5 Files paragraph.
type Paragraph struct {
	Files     []string
	Copyright copyright.Copyright
	License   LicenseSet
}

// partition collects groups that share a license and a set of holders.
type partition struct {
	license  LicenseSet
	patterns []string

	// opaque is set for groups whose statement did not decompose; such a
	// partition holds exactly one identity and keeps its text verbatim.
	opaque    bool
	statement copyright.Copyright

	holders []string
	years   map[string]*years.Collection
}

// Paragraphs groups the covering entries and resummarizes each partition of
// groups with the same license and holders into one paragraph: the years of
// every holder are coalesced across all members. Groups whose statement does
// not decompose are passed through with their text unchanged.
func (t *Tree) Paragraphs(opts years.Normalization) []Paragraph {
	parsed := make(map[MetadataID]copyright.Copyright)
	byKey := make(map[string]*partition)
	var order []*partition

	for _, g := range t.Groups() {
		m := t.metadata.MustValue(g.Metadata)
		stmt, ok := parsed[g.Metadata]
		if !ok {
			stmt = copyright.Parse(m.CopyrightText, opts)
			parsed[g.Metadata] = stmt
		}

		key := partitionKey(g.Metadata, m.License, stmt)
		p, exists := byKey[key]
		if !exists {
			p = &partition{license: m.License, opaque: stmt.IsComplex(), statement: stmt}
			if !p.opaque {
				p.years = make(map[string]*years.Collection)
			}
			byKey[key] = p
			order = append(order, p)
			if p.opaque {
				t.log.Debugw("passing through undecomposed copyright",
					logger.FieldMetadataID, int(g.Metadata),
					logger.FieldPattern, g.Patterns[0])
			}
		}
		p.patterns = append(p.patterns, g.Patterns...)
		if !p.opaque {
			p.accumulate(stmt)
		}
	}

	out := make([]Paragraph, 0, len(order))
	for _, p := range order {
		out = append(out, p.paragraph())
	}
	return out
}

func partitionKey(id MetadataID, license LicenseSet, stmt copyright.Copyright) string {
	if stmt.IsComplex() {
		return "opaque\x00" + strconv.Itoa(int(id))
	}
	holders := uniqueSorted(stmt.Holders())
	return string(license) + "\x00" + strings.Join(holders, "\x1f")
}

func uniqueSorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	w := 0
	for i, s := range out {
		if i > 0 && s == out[w-1] {
			continue
		}
		out[w] = s
		w++
	}
	return out[:w]
}

func (p *partition) accumulate(stmt copyright.Copyright) {
	for _, line := range stmt.Lines() {
		holder := strings.TrimSpace(line.Holder)
		c, ok := p.years[holder]
		if !ok {
			c = years.NewCollection()
			p.years[holder] = c
			p.holders = append(p.holders, holder)
		}
		c.Extend(line.Years)
	}
}

func (p *partition) paragraph() Paragraph {
	if p.opaque {
		return Paragraph{Files: p.patterns, Copyright: p.statement, License: p.license}
	}
	lines := make([]copyright.Decomposed, 0, len(p.holders))
	for _, h := range p.holders {
		lines = append(lines, copyright.Decomposed{
			Years:  p.years[h].CoalescedSpecs(),
			Holder: h,
		})
	}
	return Paragraph{Files: p.patterns, Copyright: copyright.Multiline(lines), License: p.license}
}

// Canonical is the strictly parsed form of one metadata value.
type Canonical struct {
	Metadata Metadata
	Rendered string
}

// Validate strictly parses the copyright text of every interned metadata
// value. Empty text is accepted. The first failure is returned as an error
// wrapping a *copyright.DecompositionError.
func (t *Tree) Validate(opts years.Normalization) (*atom.Table[Canonical, MetadataID], error) {
	return atom.TryTransform(t.metadata, func(m Metadata) (Canonical, error) {
		if m.CopyrightText == "" {
			return Canonical{Metadata: m}, nil
		}
		c, err := copyright.ParseStrict(m.CopyrightText, opts)
		if err != nil {
			return Canonical{}, errors.WithDetailf(err, "license: %s", m.License.Expression())
		}
		return Canonical{Metadata: m, Rendered: c.String()}, nil
	})
}
