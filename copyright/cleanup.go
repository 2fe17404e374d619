package copyright

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var licenseTag = regexp.MustCompile(`SPDX-License-Identifier:.*$`)

// strippedPrefixes are removed in order from the start of each line, with
// surrounding whitespace trimmed after each removal.
var strippedPrefixes = []string{
	"SPDX-FileCopyrightText:",
	"Copyright",
	"(c)",
	"(C)",
}

// Cleanup normalizes raw copyright text gathered from file headers: it drops
// SPDX tag names, "Copyright" and "(c)" markers and any trailing license
// identifier, then returns the non-empty lines sorted and deduplicated.
func Cleanup(text string) string {
	return strings.Join(CleanupLines(text), "\n")
}

// CleanupLines is Cleanup returning the individual lines.
func CleanupLines(text string) []string {
	seen := make(map[string]struct{})
	var lines []string
	for _, raw := range strings.Split(norm.NFC.String(text), "\n") {
		line := cleanupLine(raw)
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}

func cleanupLine(line string) string {
	line = strings.TrimSpace(line)
	for _, prefix := range strippedPrefixes {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			line = strings.TrimSpace(rest)
		}
	}
	return strings.TrimSpace(licenseTag.ReplaceAllString(line, ""))
}
