package logger

// OutputCategory is a kind of information whose visibility depends on the -v
// count rather than on log severity.
type OutputCategory int

const (
	OutputSummary       OutputCategory = iota // Paragraph and file counts
	OutputConfig                              // Config values loaded
	OutputTiming                              // Stage timing
	OutputFileDecisions                       // Per-file override matches
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputSummary:       VerbosityInfo,
	OutputConfig:        VerbosityDebug,
	OutputTiming:        VerbosityDebug,
	OutputFileDecisions: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}
