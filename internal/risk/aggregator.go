package risk

import "github.com/stoik/emailrisk/internal/domain"

// Aggregate runs fast-path overrides first,
// then the hybrid scoring rule (domain axis additive, local-part axis
// max'd), the decision cutoffs, and block-reason axis selection.
func Aggregate(signals domain.DetectorSignals, domainResult domain.DomainResult, weights domain.RiskWeights, thresholds domain.RiskThresholds) (domain.Decision, float64, string) {
	// Fast-path overrides, evaluated in this exact order.
	if !signals.Format.Valid {
		return decide(0.8, thresholds), 0.8, "invalid_format"
	}
	if domainResult.IsDisposable {
		return domain.DecisionBlock, 0.95, "disposable_domain"
	}
	if isHighEntropyLocalPart(signals.Format) {
		score := signals.Format.EntropyScore
		return decide(score, thresholds), score, "high_entropy"
	}

	patternScore := patternAxisScore(signals, domainResult)
	markovScore := 0.0
	if signals.Markov.Prediction == "fraud" {
		markovScore = signals.Markov.Confidence
	}

	domainContribution := domainResult.ReputationScore * weights.DomainReputation
	tldContribution := domainResult.TLDRiskScore * weights.TLDRisk
	entropyContribution := signals.Format.EntropyScore * weights.Entropy
	patternContribution := patternScore * weights.PatternDetection
	markovContribution := markovScore * weights.MarkovChain

	domainBasedRisk := domainContribution + tldContribution
	localPartRisk := maxOf(entropyContribution, patternContribution, markovContribution)

	riskScore := domainBasedRisk + localPartRisk
	if riskScore > 1 {
		riskScore = 1
	}

	reason := blockReason(signals, domainContribution, tldContribution, entropyContribution, patternContribution, markovContribution)

	return decide(riskScore, thresholds), riskScore, reason
}

// minEntropyFastPathLen is the shortest local part the entropy fast-path
// will trigger on. Below this length, ordinary short local parts
// ("user123") routinely land with every character distinct just by chance,
// which would otherwise saturate EntropyScore to 1.0 with no fraud signal
// behind it.
const minEntropyFastPathLen = 10

// isHighEntropyLocalPart gates the entropy fast-path on both the entropy
// score and character-class diversity. Entropy alone over-fires on
// ordinary dotted names: "person1.person2" scores above 0.7 on entropy but
// reuses enough characters (diversity 0.6) that it is not actually
// random-looking. Requiring diversity too keeps the fast path for
// generated-looking local parts like "xk9m2qw7r4p" without catching
// natural names.
func isHighEntropyLocalPart(format domain.FormatResult) bool {
	return format.EntropyScore > 0.7 &&
		format.LocalPartLength >= minEntropyFastPathLen &&
		format.Diversity > 0.7
}

func decide(score float64, thresholds domain.RiskThresholds) domain.Decision {
	switch {
	case score >= thresholds.Block:
		return domain.DecisionBlock
	case score >= thresholds.Warn:
		return domain.DecisionWarn
	default:
		return domain.DecisionAllow
	}
}

// patternAxisScore folds every structural E-family detector into the
// single "pattern" input the hybrid formula mixes in: the family
// extractor's rolled-up score is the floor, and any individual detector
// that actually hit can raise it. This keeps gibberish and keyboard-walk
// hits risk-bearing even though the family extractor's own priority order
// only distinguishes dated/sequential/plus/random/formatted
// shapes.
func patternAxisScore(signals domain.DetectorSignals, domainResult domain.DomainResult) float64 {
	score := PatternRisk(signals.Family, domainResult)

	if signals.Sequential.Hit {
		score = maxOf(score, signals.Sequential.Confidence)
	}
	if signals.Dated.Hit {
		score = maxOf(score, signals.Dated.Confidence)
	}
	if signals.PlusAddressing.Hit {
		score = maxOf(score, signals.PlusAddressing.Confidence)
	}
	if signals.KeyboardWalk.Hit {
		score = maxOf(score, signals.KeyboardWalk.Confidence)
	}
	if !signals.Gibberish.IsNatural {
		score = maxOf(score, signals.Gibberish.Confidence)
	}

	return score
}

func maxOf(values ...float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// blockReason picks the single highest-contributing axis and, for a
// pattern-axis win, distinguishes which structural detector drove it.
func blockReason(signals domain.DetectorSignals, domainC, tldC, entropyC, patternC, markovC float64) string {
	winner := "domain_reputation"
	best := domainC

	if tldC > best {
		winner, best = "high_risk_tld", tldC
	}
	if entropyC > best {
		winner, best = "entropy_threshold", entropyC
	}
	if patternC > best {
		winner, best = "pattern", patternC
	}
	if markovC > best {
		winner, best = "markov_chain_fraud", markovC
	}

	if winner != "pattern" {
		return winner
	}

	switch {
	case !signals.Gibberish.IsNatural:
		return "gibberish_detected"
	case signals.Sequential.Hit:
		return "sequential_pattern"
	case signals.Dated.Hit:
		return "dated_pattern"
	case signals.PlusAddressing.Hit && signals.PlusAddressing.SuspiciousTag:
		return "plus_addressing_abuse"
	case signals.KeyboardWalk.Hit:
		return "keyboard_walk"
	default:
		return "suspicious_pattern"
	}
}
