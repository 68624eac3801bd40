package markov

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildModel_AssignsNonZeroProbabilityToUnseenTransitions(t *testing.T) {
	m := buildModel(2, legitBigramCounts)

	p := m.logProbOf("^j", 'o')
	assert.Less(t, p, 0.0) // log2 of a probability is always negative

	unseen := m.logProbOf("zz", 'z')
	assert.Less(t, unseen, 0.0)
}

func TestCrossEntropy_ShorterThanOrderReturnsZero(t *testing.T) {
	m := buildModel(3, legitTrigramCounts)

	assert.Equal(t, 0.0, m.crossEntropy(""))
}

func TestCrossEntropy_KnownLegitStringScoresLowerThanFraudModel(t *testing.T) {
	legit := buildModel(2, legitBigramCounts)
	fraud := buildModel(2, fraudBigramCounts)

	hLegitOnLegit := legit.crossEntropy("john")
	hFraudOnLegit := fraud.crossEntropy("john")

	assert.Less(t, hLegitOnLegit, hFraudOnLegit)
}

func TestPad_AddsOrderPaddingOnBothEnds(t *testing.T) {
	assert.Equal(t, "^^ab$", pad("ab", 2))
	assert.Equal(t, "^^^ab$", pad("ab", 3))
}
