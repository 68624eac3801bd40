package risk

import "github.com/stoik/emailrisk/internal/domain"

// plusAddressingDetector implements the plus-addressing
// detector. The tag itself (and whether it is suspicious) is already
// computed by normaliseLocalPart; this detector just translates that into
// the uniform DetectorResult shape.
type plusAddressingDetector struct{}

func (plusAddressingDetector) Name() string { return "plus_addressing" }

func (plusAddressingDetector) Run(ne domain.NormalisedEmail) DetectorResult {
	if !ne.HasPlusTag {
		return DetectorResult{Hit: false, Confidence: 0, Raw: domain.PlusAddressingResult{}}
	}

	confidence := 0.4
	if ne.SuspiciousTag {
		confidence = 1.0
	}

	result := domain.PlusAddressingResult{
		Hit:           true,
		Tag:           ne.PlusTag,
		SuspiciousTag: ne.SuspiciousTag,
		Confidence:    confidence,
	}
	return DetectorResult{Hit: true, Confidence: confidence, Raw: result}
}

func (plusAddressingDetector) Risk(result DetectorResult) float64 {
	return result.Confidence
}
