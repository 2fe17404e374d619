// Package years models copyright years as they appear in statements: two-digit
// and four-digit raw years, the heuristics that turn them into calendar years,
// and the range algebra (containment, coalescing) built on top.
package years

import "fmt"

// Two-digit values below this threshold are assumed to be in the 21st century.
const centuryGuessThreshold = 60

// RawYear is a year as written: either two digits (0-99, century unknown) or
// four digits (>99, century known).
type RawYear struct {
	value     int
	fourDigit bool
}

// TwoDigit returns a two-digit raw year. It panics if y is outside 0-99.
func TwoDigit(y int) RawYear {
	if y < 0 || y > 99 {
		panic(fmt.Sprintf("years: two-digit year out of range: %d", y))
	}
	return RawYear{value: y}
}

// FourDigit returns a four-digit raw year. It panics if y is not above 99.
func FourDigit(y int) RawYear {
	if y <= 99 {
		panic(fmt.Sprintf("years: four-digit year out of range: %d", y))
	}
	return RawYear{value: y, fourDigit: true}
}

// IsFourDigit reports whether the century of y is known.
func (y RawYear) IsFourDigit() bool { return y.fourDigit }

// Value returns the number as written.
func (y RawYear) Value() int { return y.value }

// Tail returns the last two digits.
func (y RawYear) Tail() int { return y.value % 100 }

// Century returns the century (1-based, so 1995 is in century 20) if known.
func (y RawYear) Century() (int, bool) {
	if !y.fourDigit {
		return 0, false
	}
	return centuryOf(y.value), true
}

// ToFourDigit resolves y using the default heuristic: two-digit values below
// 60 land in the 21st century, all others in the 20th.
func (y RawYear) ToFourDigit() Year {
	if y.fourDigit {
		return Year(y.value)
	}
	return Year(composeYear(guessCentury(y.value), y.value))
}

// ToFourDigitWithCentury resolves y using century as a hint. Four-digit years
// ignore the hint.
func (y RawYear) ToFourDigitWithCentury(century int) Year {
	if y.fourDigit {
		return Year(y.value)
	}
	return Year(composeYear(century, y.value))
}

func (y RawYear) String() string {
	if y.fourDigit {
		return fmt.Sprintf("%d", y.value)
	}
	return fmt.Sprintf("%02d", y.value)
}

func guessCentury(tail int) int {
	if tail < centuryGuessThreshold {
		return 21
	}
	return 20
}

func composeYear(century, tail int) int {
	return (century-1)*100 + tail
}

func centuryOf(year int) int {
	return year/100 + 1
}
