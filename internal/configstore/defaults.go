package configstore

import "github.com/stoik/emailrisk/internal/domain"

// defaultConfiguration is the base layer of the defaults ← KV ← secrets
// load order.
func defaultConfiguration() domain.Configuration {
	return domain.Configuration{
		Thresholds: domain.RiskThresholds{
			Block: 0.6,
			Warn:  0.3,
		},
		Weights: domain.RiskWeights{
			Entropy:          0.05,
			DomainReputation: 0.15,
			TLDRisk:          0.15,
			PatternDetection: 0.30,
			MarkovChain:      0.35,
		},
		Flags: domain.FeatureFlags{
			EnableDisposableCheck: true,
			EnablePatternCheck:    true,
			EnableResponseHeaders: true,
			EnableOriginHeaders:   false,
			LogAllValidations:     false,
		},
		Integration: domain.IntegrationConfig{
			OriginURL: "",
			LogLevel:  "info",
		},
		Secrets: domain.Secrets{},
	}
}
