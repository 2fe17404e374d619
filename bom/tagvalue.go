package bom

import (
	"io"
	"os"
	"strings"

	"github.com/spdx/tools-golang/spdx"
	"github.com/spdx/tools-golang/tagvalue"

	"github.com/teranos/dep5/errors"
)

// ReadTagValueFile reads an SPDX tag-value document from path.
func ReadTagValueFile(path string) ([]FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("spdx input %s", path)
		}
		return nil, errors.Wrapf(err, "failed to open spdx input %s", path)
	}
	defer f.Close()

	records, err := ReadTagValue(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return records, nil
}

// ReadTagValue reads an SPDX tag-value document and returns its files,
// unpackaged files first, then the files of each package in order.
func ReadTagValue(r io.Reader) ([]FileRecord, error) {
	doc, err := tagvalue.Read(r)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "spdx tag-value: %s", err.Error())
	}
	return FromDocument(doc), nil
}

// FromDocument adapts the files of a parsed SPDX document.
func FromDocument(doc *spdx.Document) []FileRecord {
	if doc == nil {
		return nil
	}
	files := append([]*spdx.File(nil), doc.Files...)
	for _, pkg := range doc.Packages {
		if pkg != nil {
			files = append(files, pkg.Files...)
		}
	}

	records := make([]FileRecord, 0, len(files))
	for _, f := range files {
		if f == nil {
			continue
		}
		text := textValue(f.FileCopyrightText)
		records = append(records, FileRecord{
			Path:             f.FileName,
			CopyrightText:    text,
			HasCopyright:     text != "" && !IsSentinel(text),
			LicenseInfos:     append([]string(nil), f.LicenseInfoInFiles...),
			LicenseConcluded: strings.TrimSpace(f.LicenseConcluded),
		})
	}
	return records
}

// textValue strips <text> markers if the reader left them in place.
func textValue(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "<text>")
	v = strings.TrimSuffix(v, "</text>")
	return strings.TrimSpace(v)
}
