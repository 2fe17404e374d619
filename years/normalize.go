package years

// Normalization selects which heuristics may be used to turn a pair of raw
// years into a four-digit range. The zero value allows only unambiguous
// ranges.
type Normalization struct {
	// AllowCenturyGuess permits a two-digit/two-digit ascending pair, placing
	// both years in the century guessed from the first one.
	AllowCenturyGuess bool
	// AllowAssumingY2KSpan permits a descending two-digit/two-digit pair such
	// as 95-20, read as 1995-2020.
	AllowAssumingY2KSpan bool
	// AllowMixedSizeImpliedCenturyRollover permits pairs such as 1995-20 where
	// the two-digit year must be in the next (or previous) century.
	AllowMixedSizeImpliedCenturyRollover bool
}

// NormalizeRange resolves begin and end into a proper four-digit range. The
// boolean is false when the pair is improper or needs a heuristic that opts
// does not allow.
func NormalizeRange(begin, end RawYear, opts Normalization) (Range, bool) {
	switch {
	case begin.fourDigit && end.fourDigit:
		return makeRange(Year(begin.value), Year(end.value))

	case !begin.fourDigit && !end.fourDigit:
		if begin.value <= end.value {
			if !opts.AllowCenturyGuess {
				return Range{}, false
			}
			b := begin.ToFourDigit()
			return makeRange(b, end.ToFourDigitWithCentury(b.Century()))
		}
		if !opts.AllowAssumingY2KSpan {
			return Range{}, false
		}
		return makeRange(begin.ToFourDigitWithCentury(20), end.ToFourDigitWithCentury(21))

	case begin.fourDigit:
		century := centuryOf(begin.value)
		if end.Tail() < begin.Tail() {
			if !opts.AllowMixedSizeImpliedCenturyRollover {
				return Range{}, false
			}
			century++
		}
		return makeRange(Year(begin.value), end.ToFourDigitWithCentury(century))

	default:
		century := centuryOf(end.value)
		if begin.Tail() > end.Tail() {
			if !opts.AllowMixedSizeImpliedCenturyRollover {
				return Range{}, false
			}
			century--
		}
		return makeRange(begin.ToFourDigitWithCentury(century), Year(end.value))
	}
}

// ResolveSpec turns a raw begin/end pair into a Spec. Identical raw years
// collapse to a single year resolved with the default heuristic; anything
// else goes through NormalizeRange.
func ResolveSpec(begin, end RawYear, opts Normalization) (Spec, bool) {
	if begin == end {
		return Single(begin.ToFourDigit()), true
	}
	r, ok := NormalizeRange(begin, end, opts)
	if !ok {
		return Spec{}, false
	}
	return Closed(r), true
}

func makeRange(begin, end Year) (Range, bool) {
	if begin > end {
		return Range{}, false
	}
	return Range{begin: begin, end: end}, true
}
