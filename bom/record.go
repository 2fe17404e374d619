// Package bom reads per-file copyright and license facts from an SPDX
// bill of materials.
package bom

import (
	"sort"
	"strings"
)

// SPDX sentinels meaning "nothing declared".
const (
	None        = "NONE"
	NoAssertion = "NOASSERTION"
)

// FileRecord is what the bill of materials says about one file.
type FileRecord struct {
	Path             string
	CopyrightText    string
	HasCopyright     bool
	LicenseInfos     []string
	LicenseConcluded string
}

// IsSentinel reports whether v is NONE or NOASSERTION.
func IsSentinel(v string) bool {
	v = strings.TrimSpace(v)
	return v == None || v == NoAssertion
}

// Licenses returns the license identifiers that apply to the file, sorted and
// deduplicated. A concluded license wins over the per-file findings. When
// only NONE or NOASSERTION were declared the first of them is kept, and a
// file with no license information at all is NOASSERTION.
func (r FileRecord) Licenses() []string {
	concluded := strings.TrimSpace(r.LicenseConcluded)
	if concluded != "" && !IsSentinel(concluded) {
		return []string{concluded}
	}
	seen := make(map[string]struct{}, len(r.LicenseInfos))
	var out []string
	sentinel := ""
	for _, l := range r.LicenseInfos {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if IsSentinel(l) {
			if sentinel == "" {
				sentinel = l
			}
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	if len(out) > 0 {
		sort.Strings(out)
		return out
	}
	switch {
	case sentinel != "":
		return []string{sentinel}
	case concluded != "":
		return []string{concluded}
	}
	return []string{NoAssertion}
}

// CleanPath removes a leading "./" from p.
func CleanPath(p string) string {
	return strings.TrimPrefix(p, "./")
}

// Normalize applies the no-copyright policy: records without a copyright are
// dropped when omit is set and otherwise kept with empty text.
func Normalize(records []FileRecord, omit bool) []FileRecord {
	out := make([]FileRecord, 0, len(records))
	for _, r := range records {
		if IsSentinel(r.CopyrightText) || strings.TrimSpace(r.CopyrightText) == "" {
			r.HasCopyright = false
		}
		if !r.HasCopyright {
			if omit {
				continue
			}
			r.CopyrightText = ""
		}
		r.Path = CleanPath(r.Path)
		out = append(out, r)
	}
	return out
}
