package refdata

import (
	"math"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/stoik/emailrisk/internal/domain"
)

// extractTLD returns the effective public-suffix TLD for domain, grounded
// on Vandit1604-emailguard's use of publicsuffix.EffectiveTLDPlusOne so
// multi-label suffixes (co.uk, com.br) classify correctly instead of a
// naive last-dot split.
func extractTLD(host string) string {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	suffix, icann := publicsuffix.PublicSuffix(host)
	if suffix == "" {
		return ""
	}
	if !icann && !strings.Contains(suffix, ".") {
		// Private/unlisted single-label suffix: still usable as a TLD.
		return suffix
	}
	return suffix
}

// tldRiskScore implements the TLD risk formula:
// riskScore = clamp((multiplier - 0.2) / 2.8, 0, 1); unknown TLDs are 0.15.
func tldRiskScore(profile domain.TLDProfile, known bool) float64 {
	if !known {
		return 0.15
	}
	score := (profile.RiskMultiplier - 0.2) / 2.8
	return math.Max(0, math.Min(1, score))
}
