package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stoik/emailrisk/internal/domain"
)

func TestSequentialDetector_TrailingDigitsHit(t *testing.T) {
	d := sequentialDetector{}

	result := d.Run(domain.NormalisedEmail{Local: "john_123"})

	assert.True(t, result.Hit)
	raw := result.Raw.(domain.SequentialResult)
	assert.Equal(t, 3, raw.RunLength)
	assert.Greater(t, result.Confidence, 0.4)
}

func TestSequentialDetector_NamePrefixBumpsConfidence(t *testing.T) {
	d := sequentialDetector{}

	withName := d.Run(domain.NormalisedEmail{Local: "ab99"})
	withoutName := d.Run(domain.NormalisedEmail{Local: "a99"})

	assert.Greater(t, withName.Confidence, withoutName.Confidence)
}

func TestSequentialDetector_TrailingLetterSuffixHit(t *testing.T) {
	d := sequentialDetector{}

	result := d.Run(domain.NormalisedEmail{Local: "jane_a"})

	assert.True(t, result.Hit)
}

func TestSequentialDetector_NoTrailingRunMisses(t *testing.T) {
	d := sequentialDetector{}

	result := d.Run(domain.NormalisedEmail{Local: "jane.smith"})

	assert.False(t, result.Hit)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestSequentialDetector_ConfidenceClampedToOne(t *testing.T) {
	d := sequentialDetector{}

	result := d.Run(domain.NormalisedEmail{Local: "alice123456789"})

	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestSequentialDetector_SingleTrailingDigitHitsBelowFamilyThreshold(t *testing.T) {
	d := sequentialDetector{}

	result := d.Run(domain.NormalisedEmail{Local: "person1.person2"})

	assert.True(t, result.Hit)
	raw := result.Raw.(domain.SequentialResult)
	assert.Equal(t, 1, raw.RunLength)
	assert.Less(t, result.Confidence, 0.5)
}
