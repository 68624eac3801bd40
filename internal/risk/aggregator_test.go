package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stoik/emailrisk/internal/domain"
)

// defaultWeights mirrors internal/configstore's defaultConfiguration.
func defaultWeights() domain.RiskWeights {
	return domain.RiskWeights{
		Entropy:          0.05,
		DomainReputation: 0.15,
		TLDRisk:          0.15,
		PatternDetection: 0.30,
		MarkovChain:      0.35,
	}
}

func defaultThresholds() domain.RiskThresholds {
	return domain.RiskThresholds{Warn: 0.3, Block: 0.6}
}

func TestAggregate_InvalidFormatOverridesEverything(t *testing.T) {
	signals := domain.DetectorSignals{Format: domain.FormatResult{Valid: false}}

	decision, score, reason := Aggregate(signals, domain.DomainResult{}, defaultWeights(), defaultThresholds())

	assert.Equal(t, domain.DecisionBlock, decision)
	assert.Equal(t, 0.8, score)
	assert.Equal(t, "invalid_format", reason)
}

func TestAggregate_DisposableDomainForcesBlock(t *testing.T) {
	signals := domain.DetectorSignals{Format: domain.FormatResult{Valid: true}}
	domainResult := domain.DomainResult{IsDisposable: true}

	decision, score, reason := Aggregate(signals, domainResult, defaultWeights(), defaultThresholds())

	assert.Equal(t, domain.DecisionBlock, decision)
	assert.Equal(t, 0.95, score)
	assert.Equal(t, "disposable_domain", reason)
}

func TestAggregate_HighEntropyOverridesHybridScore(t *testing.T) {
	signals := domain.DetectorSignals{Format: domain.FormatResult{
		Valid:           true,
		EntropyScore:    0.85,
		Diversity:       0.9,
		LocalPartLength: 11,
	}}

	decision, score, reason := Aggregate(signals, domain.DomainResult{}, defaultWeights(), defaultThresholds())

	assert.Equal(t, domain.DecisionBlock, decision)
	assert.Equal(t, 0.85, score)
	assert.Equal(t, "high_entropy", reason)
}

func TestAggregate_RepeatedCharacterLocalPartSkipsEntropyFastPath(t *testing.T) {
	// "person1.person2" scores above 0.7 on raw entropy but reuses enough
	// characters (diversity ~0.6) that it is not actually random-looking;
	// the fast path must require diversity too, or a name this ordinary
	// would get blocked outright.
	format := ValidateFormat("person1.person2", "gmail.com")
	signals := domain.DetectorSignals{
		Format: format,
		Family: domain.PatternFamily{Type: domain.PatternFormatted, Confidence: 0.4},
		Markov: domain.MarkovEnsembleResult{Prediction: "legit", Confidence: 0.9},
	}
	domainResult := domain.DomainResult{ReputationScore: 0.1, TLDRiskScore: 0.1}

	decision, _, reason := Aggregate(signals, domainResult, defaultWeights(), defaultThresholds())

	assert.NotEqual(t, "high_entropy", reason)
	assert.Equal(t, domain.DecisionAllow, decision)
}

func TestAggregate_ShortHighDiversityLocalPartSkipsEntropyFastPath(t *testing.T) {
	// "user123" is only 7 characters — below the fast-path length floor —
	// even though every character happens to be distinct.
	format := ValidateFormat("user123", "outlook.com")

	signals := domain.DetectorSignals{
		Format: format,
		Family: domain.PatternFamily{Type: domain.PatternSequential, Confidence: 0.55},
	}
	domainResult := domain.DomainResult{}

	_, _, reason := Aggregate(signals, domainResult, defaultWeights(), defaultThresholds())

	assert.NotEqual(t, "high_entropy", reason)
}

func TestAggregate_CleanEmailAllowsWithLowScore(t *testing.T) {
	signals := domain.DetectorSignals{
		Format: domain.FormatResult{Valid: true, EntropyScore: 0.2},
		Family: domain.PatternFamily{Type: domain.PatternSimple, Confidence: 0.3},
		Markov: domain.MarkovEnsembleResult{Prediction: "legit", Confidence: 0.8},
	}
	domainResult := domain.DomainResult{ReputationScore: 0.0, TLDRiskScore: 0.1}

	decision, score, _ := Aggregate(signals, domainResult, defaultWeights(), defaultThresholds())

	assert.Equal(t, domain.DecisionAllow, decision)
	assert.Less(t, score, 0.3)
}

func TestAggregate_MarkovFraudDrivesBlockReason(t *testing.T) {
	signals := domain.DetectorSignals{
		Format: domain.FormatResult{Valid: true, EntropyScore: 0.1},
		Family: domain.PatternFamily{Type: domain.PatternSimple, Confidence: 0.1},
		Markov: domain.MarkovEnsembleResult{Prediction: "fraud", Confidence: 0.95},
	}
	domainResult := domain.DomainResult{}

	_, _, reason := Aggregate(signals, domainResult, defaultWeights(), defaultThresholds())

	assert.Equal(t, "markov_chain_fraud", reason)
}

func TestAggregate_PatternAxisDistinguishesGibberish(t *testing.T) {
	signals := domain.DetectorSignals{
		Format:    domain.FormatResult{Valid: true, EntropyScore: 0.1},
		Family:    domain.PatternFamily{Type: domain.PatternRandom, Confidence: 0.9},
		Gibberish: domain.GibberishResult{IsNatural: false},
		Markov:    domain.MarkovEnsembleResult{Prediction: "legit", Confidence: 0.1},
	}
	domainResult := domain.DomainResult{}

	_, _, reason := Aggregate(signals, domainResult, defaultWeights(), defaultThresholds())

	assert.Equal(t, "gibberish_detected", reason)
}

func TestAggregate_RiskScoreNeverExceedsOne(t *testing.T) {
	signals := domain.DetectorSignals{
		Format: domain.FormatResult{Valid: true, EntropyScore: 1.0},
		Family: domain.PatternFamily{Type: domain.PatternRandom, Confidence: 1.0},
		Markov: domain.MarkovEnsembleResult{Prediction: "fraud", Confidence: 1.0},
	}
	domainResult := domain.DomainResult{ReputationScore: 1.0, TLDRiskScore: 1.0}

	_, score, _ := Aggregate(signals, domainResult, defaultWeights(), defaultThresholds())

	assert.LessOrEqual(t, score, 1.0)
}
