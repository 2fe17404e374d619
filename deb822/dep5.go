package deb822

import "strings"

// FormatURL is the DEP5 format identifier written into header paragraphs.
const FormatURL = "https://www.debian.org/doc/packaging-manuals/copyright-format/1.0/"

// HeaderParagraph is the first paragraph of a DEP5 file.
type HeaderParagraph struct {
	Format          string
	UpstreamName    string
	UpstreamContact string
	Source          string
	Disclaimer      string
	Comment         string
	License         string
	Copyright       string
}

// NewHeaderParagraph returns a header with the standard Format.
func NewHeaderParagraph() HeaderParagraph {
	return HeaderParagraph{Format: FormatURL}
}

func (h HeaderParagraph) Fields() []Field {
	format := h.Format
	if format == "" {
		format = FormatURL
	}
	fields := []Field{{Name: "Format", Value: format, Kind: SingleLine}}
	fields = appendIfSet(fields, Field{Name: "Upstream-Name", Value: h.UpstreamName, Kind: SingleLine})
	fields = appendIfSet(fields, Field{Name: "Upstream-Contact", Value: h.UpstreamContact, Kind: SingleLine})
	fields = appendIfSet(fields, Field{Name: "Source", Value: h.Source, Kind: SingleLine})
	fields = appendIfSet(fields, Field{Name: "Disclaimer", Value: h.Disclaimer, Kind: SingleLineOrMultilineEmptyFirstLine})
	fields = appendIfSet(fields, Field{Name: "Comment", Value: h.Comment, Kind: SingleLineOrMultilineEmptyFirstLine})
	fields = appendIfSet(fields, Field{Name: "License", Value: h.License, Kind: SingleLineOrMultilineEmptyFirstLine})
	fields = appendIfSet(fields, Field{Name: "Copyright", Value: h.Copyright, Kind: Multiline})
	return fields
}

// FilesParagraph declares the copyright and license of a set of files.
type FilesParagraph struct {
	Files     []string
	Copyright string
	License   string
	Comment   string
}

func (f FilesParagraph) Fields() []Field {
	fields := []Field{
		{Name: "Files", Value: strings.Join(f.Files, "\n"), Kind: Multiline},
		{Name: "Copyright", Value: f.Copyright, Kind: Multiline},
		{Name: "License", Value: f.License, Kind: SingleLineOrMultilineEmptyFirstLine},
	}
	return appendIfSet(fields, Field{Name: "Comment", Value: f.Comment, Kind: Multiline})
}

// LicenseParagraph is a standalone license text: the first line of License is
// the short name, the rest is the text.
type LicenseParagraph struct {
	License string
	Comment string
}

func (l LicenseParagraph) Fields() []Field {
	fields := []Field{{Name: "License", Value: l.License, Kind: Multiline}}
	return appendIfSet(fields, Field{Name: "Comment", Value: l.Comment, Kind: Multiline})
}

func appendIfSet(fields []Field, f Field) []Field {
	if strings.TrimSpace(f.Value) == "" {
		return fields
	}
	return append(fields, f)
}
