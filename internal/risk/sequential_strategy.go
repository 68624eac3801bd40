package risk

import (
	"regexp"

	"github.com/stoik/emailrisk/internal/domain"
)

// trailingDigitRun matches an optional separator then a run of >= 1 digits
// at the very end of the local part (john_123, john.00042, john42, person2).
// A lone trailing digit still counts as a hit, but its confidence is capped
// below the 0.5 family-promotion threshold (see Run below) so ordinary
// formatted-name noise like "person1.person2" is not mistaken for an
// incrementing counter.
var trailingDigitRun = regexp.MustCompile(`[_.\-]?([0-9]+)$`)

// trailingLetterSuffix matches a single-letter suffix after an underscore
// (john_a), the other sequential shape this detector covers.
var trailingLetterSuffix = regexp.MustCompile(`_([a-zA-Z])$`)

var namePrefixHint = regexp.MustCompile(`^[a-zA-Z]{2,}$`)

// sequentialDetector implements the sequential-suffix detector.
type sequentialDetector struct{}

func (sequentialDetector) Name() string { return "sequential" }

func (sequentialDetector) Run(ne domain.NormalisedEmail) DetectorResult {
	local := ne.Local

	if m := trailingDigitRun.FindStringSubmatch(local); m != nil {
		runLen := len(m[1])
		prefix := local[:len(local)-len(m[0])]

		var confidence float64
		if runLen == 1 {
			// Kept well under the 0.5 family-promotion threshold regardless
			// of prefix shape: a single trailing digit alone is too weak a
			// signal to call this address "sequential".
			confidence = 0.3
		} else {
			confidence = 0.4 + 0.15*float64(runLen)
			if confidence > 0.9 {
				confidence = 0.9
			}
			if namePrefixHint.MatchString(prefix) {
				confidence += 0.15
			}
			if confidence > 1 {
				confidence = 1
			}
		}

		result := domain.SequentialResult{Hit: true, RunLength: runLen, Confidence: confidence}
		return DetectorResult{Hit: true, Confidence: confidence, Raw: result}
	}

	if m := trailingLetterSuffix.FindStringSubmatch(local); m != nil {
		confidence := 0.45
		result := domain.SequentialResult{Hit: true, RunLength: 1, Confidence: confidence}
		return DetectorResult{Hit: true, Confidence: confidence, Raw: result}
	}

	return DetectorResult{Hit: false, Confidence: 0, Raw: domain.SequentialResult{}}
}

func (sequentialDetector) Risk(result DetectorResult) float64 {
	return result.Confidence
}
