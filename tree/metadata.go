package tree

import "strings"

// MetadataID identifies an interned Metadata value.
type MetadataID int

// LicenseSet is an ordered list of license identifiers in comparable form.
type LicenseSet string

const licenseSeparator = "\n"

// NewLicenseSet builds a set from ids in the given order.
func NewLicenseSet(ids []string) LicenseSet {
	return LicenseSet(strings.Join(ids, licenseSeparator))
}

// IDs returns the identifiers in order.
func (l LicenseSet) IDs() []string {
	if l == "" {
		return nil
	}
	return strings.Split(string(l), licenseSeparator)
}

// Expression renders the set as an SPDX OR-expression.
func (l LicenseSet) Expression() string {
	return strings.Join(l.IDs(), " OR ")
}

// Metadata is the interned key for a file: its cleaned copyright text and its
// licenses.
type Metadata struct {
	CopyrightText string
	License       LicenseSet
}
