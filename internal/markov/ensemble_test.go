package markov

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stoik/emailrisk/internal/domain"
)

func TestEnsembleScore_NameLikeLocalPartReturnsBoundedTwoOrderResult(t *testing.T) {
	e := NewEnsemble()

	result := e.Score("johnsmith")

	assert.Contains(t, []string{"legit", "fraud"}, result.Prediction)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
	assert.Len(t, result.PerOrder, 2)
	assert.Equal(t, 2, result.PerOrder[0].Order)
	assert.Equal(t, 3, result.PerOrder[1].Order)
}

func TestEnsembleScore_RandomLooksFraudulent(t *testing.T) {
	e := NewEnsemble()

	result := e.Score("xkqzxvqjwr")

	assert.Equal(t, "fraud", result.Prediction)
	assert.NotEmpty(t, result.Reasoning)
}

func TestEnsembleScore_EmptyStringDoesNotPanic(t *testing.T) {
	e := NewEnsemble()

	assert.NotPanics(t, func() {
		e.Score("")
	})
}

func TestArbitrate_BothAgreeHighConfidence(t *testing.T) {
	bigram := makeOrderResult(2, "fraud", 0.5)
	trigram := makeOrderResult(3, "fraud", 0.4)

	prediction, confidence, reasoning := arbitrate(bigram, trigram)

	assert.Equal(t, "fraud", prediction)
	assert.Equal(t, 0.5, confidence)
	assert.Equal(t, "both_agree_high_confidence", reasoning)
}

func TestArbitrate_DisagreementDefaultsToBigram(t *testing.T) {
	bigram := makeOrderResult(2, "legit", 0.25)
	trigram := makeOrderResult(3, "fraud", 0.2)

	prediction, _, reasoning := arbitrate(bigram, trigram)

	assert.Equal(t, "legit", prediction)
	assert.Equal(t, "disagree_default_to_2gram", reasoning)
}

func TestCrossEntropy_ZeroDivisorYieldsZeroConfidence(t *testing.T) {
	result := scoreOrder(2, "", buildModel(2, legitBigramCounts), buildModel(2, fraudBigramCounts))

	assert.Equal(t, 0.0, result.Confidence)
}

func makeOrderResult(order int, prediction string, confidence float64) domain.MarkovOrderResult {
	return domain.MarkovOrderResult{Order: order, Prediction: prediction, Confidence: confidence}
}
