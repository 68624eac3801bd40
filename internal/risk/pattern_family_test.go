package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stoik/emailrisk/internal/domain"
)

func TestExtractFamily_DatedPatternTakesPriority(t *testing.T) {
	ne := domain.NormalisedEmail{Local: "john2026", Domain: "example.com"}
	dated := domain.DatedResult{Hit: true, Confidence: 0.8, Shape: "trailing_4_digit_year"}
	sequential := domain.SequentialResult{Hit: true, Confidence: 0.55}

	family := ExtractFamily(ne, sequential, dated, domain.DomainResult{})

	assert.Equal(t, domain.PatternDated, family.Type)
	assert.Contains(t, family.FamilyString, "YEAR")
}

func TestExtractFamily_SequentialWinsWhenNotDated(t *testing.T) {
	ne := domain.NormalisedEmail{Local: "john123", Domain: "example.com"}
	sequential := domain.SequentialResult{Hit: true, Confidence: 0.55}

	family := ExtractFamily(ne, sequential, domain.DatedResult{}, domain.DomainResult{})

	assert.Equal(t, domain.PatternSequential, family.Type)
}

func TestExtractFamily_PlusTagWhenNoSequentialOrDated(t *testing.T) {
	ne := domain.NormalisedEmail{Local: "alice", Domain: "example.com", HasPlusTag: true, SuspiciousTag: true}

	family := ExtractFamily(ne, domain.SequentialResult{}, domain.DatedResult{}, domain.DomainResult{})

	assert.Equal(t, domain.PatternPlusAddress, family.Type)
	assert.Equal(t, 0.7, family.Confidence)
}

func TestExtractFamily_RandomLookingLocalPart(t *testing.T) {
	ne := domain.NormalisedEmail{Local: "a1b2c3d4e5", Domain: "example.com"}

	family := ExtractFamily(ne, domain.SequentialResult{}, domain.DatedResult{}, domain.DomainResult{})

	assert.Equal(t, domain.PatternRandom, family.Type)
}

func TestExtractFamily_SimpleNameFallsThrough(t *testing.T) {
	ne := domain.NormalisedEmail{Local: "alice", Domain: "example.com"}

	family := ExtractFamily(ne, domain.SequentialResult{}, domain.DatedResult{}, domain.DomainResult{})

	assert.Equal(t, domain.PatternSimple, family.Type)
}

func TestExtractFamily_FamilyHashIsSixteenHexChars(t *testing.T) {
	ne := domain.NormalisedEmail{Local: "alice", Domain: "example.com"}

	family := ExtractFamily(ne, domain.SequentialResult{}, domain.DatedResult{}, domain.DomainResult{})

	assert.Len(t, family.FamilyHash, 16)
}

func TestPatternRisk_DisposableDomainRaisesScore(t *testing.T) {
	pf := domain.PatternFamily{Type: domain.PatternSimple, Confidence: 0.3}

	clean := PatternRisk(pf, domain.DomainResult{})
	disposable := PatternRisk(pf, domain.DomainResult{IsDisposable: true})

	assert.Greater(t, disposable, clean)
}

func TestPatternRisk_ScoreClampedToUnitInterval(t *testing.T) {
	pf := domain.PatternFamily{Type: domain.PatternRandom, Confidence: 1.0}

	score := PatternRisk(pf, domain.DomainResult{IsDisposable: true, IsFreeProvider: true})

	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestBaseStructure_ClassifiesTokens(t *testing.T) {
	assert.Equal(t, "NAME.NUM", baseStructure("alice.123"))
	assert.Equal(t, "NUM.NAME", baseStructure("123.alice"))
}
