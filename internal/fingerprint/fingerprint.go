// Package fingerprint implements the request-fingerprint deriver
// a deterministic composite hash of the request's
// transport signals, plus verbatim propagation of the geolocation/ASN/
// bot-score fields the recorder and response envelope need.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/stoik/emailrisk/internal/domain"
)

// Derive builds a domain.Fingerprint from raw transport signals. Missing
// string components become empty strings before hashing, so the hash is
// stable regardless of which signals a given edge provider supplies.
func Derive(signals domain.TransportSignals) domain.Fingerprint {
	return domain.Fingerprint{
		Hash:       hash(signals),
		Country:    signals.Country,
		ASN:        signals.ASN,
		BotScore:   signals.BotScore,
		JA4:        signals.JA4,
		JA3:        signals.JA3,
		UserAgent:  signals.UserAgent,
		DeviceType: signals.DeviceType,
	}
}

// hash builds the composite fingerprint: SHA-256 hex of
// "ip|ja4|asn|device_type|bot_score".
func hash(signals domain.TransportSignals) string {
	parts := []string{
		signals.IP,
		signals.JA4,
		signals.ASN,
		signals.DeviceType,
		formatBotScore(signals.BotScore),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

// formatBotScore renders the bot score the same way on every call so the
// hash stays stable for a given float value; an unset score (0) renders as
// the empty string, the same as any other missing component.
func formatBotScore(score float64) string {
	if score == 0 {
		return ""
	}
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// EmailHash returns the first 16 hex characters of SHA-256(normalized),
// the truncated identifier DecisionRecord carries in
// place of the cleartext email.
func EmailHash(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:16]
}

// String renders a Fingerprint for debug logging without ever including
// the underlying IP/UA, which must never be retained past
// the request.
func String(fp domain.Fingerprint) string {
	return fmt.Sprintf("fingerprint{hash=%s country=%s asn=%s bot_score=%.2f}", fp.Hash, fp.Country, fp.ASN, fp.BotScore)
}
