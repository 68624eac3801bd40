package risk

import (
	"github.com/stoik/emailrisk/internal/domain"
	"github.com/stoik/emailrisk/internal/markov"
)

// markovDetector adapts internal/markov.Ensemble to the Detector interface
// so the engine can run it alongside the E-family pattern detectors. It is
// not included in patternDetectors() since the orchestrator requires the
// Markov ensemble to run after the family extractor has a chance to see
// the other detector outputs, but its risk translation follows the same
// "result → [0,1]" contract.
type markovDetector struct {
	ensemble *markov.Ensemble
}

func (markovDetector) Name() string { return "markov" }

func (d markovDetector) Run(ne domain.NormalisedEmail) DetectorResult {
	result := d.ensemble.Score(ne.Local)
	return DetectorResult{
		Hit:        result.Prediction == "fraud",
		Confidence: result.Confidence,
		Raw:        result,
	}
}

// Risk returns confidence if the prediction is fraud, else 0.
func (markovDetector) Risk(result DetectorResult) float64 {
	raw := result.Raw.(domain.MarkovEnsembleResult)
	if raw.Prediction != "fraud" {
		return 0
	}
	return raw.Confidence
}
