package configstore

import (
	"math"
	"net/url"

	"github.com/stoik/emailrisk/internal/domain"
)

const weightSumTolerance = 1e-6

// Validate enforces every configuration invariant. It returns a
// domain.Error with Kind InvalidConfig carrying a field-by-field message on
// the first violation found; the caller's prior configuration is left
// untouched.
func Validate(cfg domain.Configuration) error {
	if !(cfg.Thresholds.Warn > 0 && cfg.Thresholds.Warn < cfg.Thresholds.Block && cfg.Thresholds.Block < 1) {
		return domain.NewInvalidConfig("thresholds must satisfy 0 < warn < block < 1", nil)
	}

	sum := cfg.Weights.Sum()
	if math.Abs(sum-1.0) > weightSumTolerance {
		return domain.NewInvalidConfig("risk weights must sum to 1.0 within 1e-6", nil)
	}
	for name, w := range map[string]float64{
		"entropy":          cfg.Weights.Entropy,
		"domainReputation": cfg.Weights.DomainReputation,
		"tldRisk":          cfg.Weights.TLDRisk,
		"patternDetection": cfg.Weights.PatternDetection,
		"markovChain":      cfg.Weights.MarkovChain,
	} {
		if w < 0 || w > 1 {
			return domain.NewInvalidConfig("weight "+name+" must be in [0,1]", nil)
		}
	}

	if cfg.Integration.OriginURL != "" {
		u, err := url.Parse(cfg.Integration.OriginURL)
		if err != nil || !u.IsAbs() {
			return domain.NewInvalidConfig("origin_url must be an absolute URL when set", err)
		}
	}

	return nil
}
