package overrides

import (
	"regexp"
	"strings"

	"github.com/teranos/dep5/errors"
)

// compileGlob turns a DEP5 Files pattern into an anchored regular expression.
// "*" matches any sequence including "/", "?" matches one character, and
// "\*", "\?" and "\\" stand for the literal characters.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '\\':
			if i+1 >= len(pattern) {
				return nil, errors.NewInvalidInputError("pattern %q ends with a lone backslash", pattern)
			}
			next := pattern[i+1]
			if next != '*' && next != '?' && next != '\\' {
				return nil, errors.NewInvalidInputError("pattern %q: unsupported escape \\%c", pattern, next)
			}
			b.WriteString(regexp.QuoteMeta(string(next)))
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
