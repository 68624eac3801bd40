package markov

import (
	"math"
	"strings"

	"github.com/stoik/emailrisk/internal/domain"
)

// Ensemble holds the four fixed models (legit/fraud × bigram/trigram) and
// runs the cross-entropy scoring and arbitration the ensemble is built around.
type Ensemble struct {
	bigramLegit  *model
	bigramFraud  *model
	trigramLegit *model
	trigramFraud *model
}

// NewEnsemble builds the ensemble from the compiled-in frequency tables.
func NewEnsemble() *Ensemble {
	return &Ensemble{
		bigramLegit:  buildModel(2, legitBigramCounts),
		bigramFraud:  buildModel(2, fraudBigramCounts),
		trigramLegit: buildModel(3, legitTrigramCounts),
		trigramFraud: buildModel(3, fraudTrigramCounts),
	}
}

// Score runs both orders against the local part and arbitrates between them.
func (e *Ensemble) Score(localPart string) domain.MarkovEnsembleResult {
	s := normaliseForMarkov(localPart)

	bigram := scoreOrder(2, s, e.bigramLegit, e.bigramFraud)
	trigram := scoreOrder(3, s, e.trigramLegit, e.trigramFraud)

	prediction, confidence, reasoning := arbitrate(bigram, trigram)

	return domain.MarkovEnsembleResult{
		Prediction: prediction,
		Confidence: confidence,
		Reasoning:  reasoning,
		PerOrder:   []domain.MarkovOrderResult{bigram, trigram},
	}
}

func scoreOrder(order int, s string, legit, fraud *model) domain.MarkovOrderResult {
	hLegit := legit.crossEntropy(s)
	hFraud := fraud.crossEntropy(s)

	prediction := "legit"
	if hLegit > hFraud {
		prediction = "fraud"
	}

	denom := math.Max(hLegit, hFraud)
	confidence := 0.0
	if denom > 0 {
		confidence = math.Abs(hLegit-hFraud) / denom
		confidence = math.Max(0, math.Min(1, confidence))
	}

	return domain.MarkovOrderResult{
		Order:      order,
		HLegit:     hLegit,
		HFraud:     hFraud,
		Prediction: prediction,
		Confidence: confidence,
	}
}

// arbitrate applies the five-rule order, verbatim.
func arbitrate(bigram, trigram domain.MarkovOrderResult) (prediction string, confidence float64, reasoning string) {
	c2, c3 := bigram.Confidence, trigram.Confidence

	// Rule 1: both agree and both confident.
	if bigram.Prediction == trigram.Prediction && math.Min(c2, c3) > 0.30 {
		return bigram.Prediction, math.Max(c2, c3), "both_agree_high_confidence"
	}
	// Rule 2: trigram strongly confident and well ahead of bigram.
	if c3 > 0.50 && c3 > 1.5*c2 {
		return trigram.Prediction, c3, "3gram_high_confidence_override"
	}
	// Rule 3: bigram flags gibberish-shaped fraud with high cross-entropy.
	if bigram.Prediction == "fraud" && c2 > 0.20 && bigram.HFraud > 6.0 {
		return "fraud", c2, "2gram_gibberish_detection"
	}
	// Rule 4: disagreement defaults to bigram.
	if bigram.Prediction != trigram.Prediction {
		return bigram.Prediction, c2, "disagree_default_to_2gram"
	}
	// Rule 5: higher-confidence model wins.
	if c3 >= c2 {
		return trigram.Prediction, c3, "3gram_higher_confidence"
	}
	return bigram.Prediction, c2, "2gram_higher_confidence"
}

// normaliseForMarkov lowercases and strips characters outside a-z0-9, which
// keeps the model's alphabet closed over what data.go's tables cover.
func normaliseForMarkov(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
