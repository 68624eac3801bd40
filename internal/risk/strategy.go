// Package risk implements the risk engine: format validation, domain
// classification, the five structural pattern detectors, the pattern-family
// extractor, the Markov-ensemble wrapper, and the hybrid aggregator that
// combines all of their results into one decision.
package risk

import "github.com/stoik/emailrisk/internal/domain"

// DetectorResult is the uniform envelope a Detector's Run returns: a hit
// flag, a confidence in [0,1], and the concrete typed result (one of the
// domain.*Result structs) for callers that need detector-specific fields.
type DetectorResult struct {
	Hit        bool
	Confidence float64
	Raw        interface{}
}

// Detector is the pluggable-strategy capability this package is built
// around: a name, a pure Run over the normalised email, and a Risk
// translator that turns one detector's result into the [0,1] contribution
// the aggregator mixes in.
//
// Grounded on JeromeDesseaux-test_stoik's DetectionStrategy interface
// (internal/domain/detection/strategy.go): one method to run the check, one
// to name it, stored in an ordered slice for deterministic iteration.
type Detector interface {
	Name() string
	Run(ne domain.NormalisedEmail) DetectorResult
	Risk(result DetectorResult) float64
}

// patternDetectors returns the five structural detectors,
// in a fixed order — they are independent and read-only, so the engine may
// run them concurrently, but the returned slice order is deterministic.
func patternDetectors(layouts map[string][]string) []Detector {
	return []Detector{
		sequentialDetector{},
		datedDetector{},
		plusAddressingDetector{},
		keyboardWalkDetector{layouts: layouts},
		gibberishDetector{},
	}
}
