package application

import (
	"strconv"

	"github.com/stoik/emailrisk/internal/domain"
)

// forwardHeaders builds the X-Fraud-* header projection
// for origin forwarding: Risk-Score, Decision, Reason, Fingerprint,
// Bot-Score, Country, ASN, Pattern-Type, Pattern-Confidence, Has-Gibberish.
func forwardHeaders(result domain.ValidationResult, fp domain.Fingerprint, reason string) map[string]string {
	return map[string]string{
		"X-Fraud-Risk-Score":         strconv.FormatFloat(result.RiskScore, 'f', 4, 64),
		"X-Fraud-Decision":           string(result.Decision),
		"X-Fraud-Reason":             reason,
		"X-Fraud-Fingerprint":        fp.Hash,
		"X-Fraud-Bot-Score":          strconv.FormatFloat(fp.BotScore, 'f', 4, 64),
		"X-Fraud-Country":            fp.Country,
		"X-Fraud-ASN":                fp.ASN,
		"X-Fraud-Pattern-Type":       string(result.Signals.Family.Type),
		"X-Fraud-Pattern-Confidence": strconv.FormatFloat(result.Signals.Family.Confidence, 'f', 4, 64),
		"X-Fraud-Has-Gibberish":      strconv.FormatBool(!result.Signals.Gibberish.IsNatural),
	}
}

// ResponseHeaders builds the X-* response headers for the validation
// endpoint, used by cmd/edge-validator when cfg.flags.enable_response_headers
// is set.
func ResponseHeaders(result domain.ValidationResult) map[string]string {
	headers := map[string]string{
		"X-Risk-Score":           strconv.FormatFloat(result.RiskScore, 'f', 4, 64),
		"X-Fraud-Decision":       string(result.Decision),
		"X-Fingerprint-Hash":     result.Fingerprint.Hash,
		"X-Bot-Score":            strconv.FormatFloat(result.Fingerprint.BotScore, 'f', 4, 64),
		"X-Country":              result.Fingerprint.Country,
		"X-Detection-Latency-Ms": strconv.FormatInt(result.LatencyMs, 10),
	}
	if result.Decision != domain.DecisionAllow {
		headers["X-Fraud-Reason"] = result.Reason
	}
	if result.Signals.Family.Type != "" {
		headers["X-Pattern-Type"] = string(result.Signals.Family.Type)
		headers["X-Pattern-Confidence"] = strconv.FormatFloat(result.Signals.Family.Confidence, 'f', 4, 64)
	}
	headers["X-Has-Gibberish"] = strconv.FormatBool(!result.Signals.Gibberish.IsNatural)
	return headers
}
