package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stoik/emailrisk/internal/domain"
)

func TestDerive_IsDeterministicForIdenticalSignals(t *testing.T) {
	signals := domain.TransportSignals{
		IP: "203.0.113.7", JA4: "t13d1516h2_8daaf6152771_b0d3f574ef2a",
		ASN: "AS15169", DeviceType: "desktop", BotScore: 0.12,
		Country: "US", UserAgent: "Mozilla/5.0",
	}

	first := Derive(signals)
	second := Derive(signals)

	assert.Equal(t, first.Hash, second.Hash)
	assert.Len(t, first.Hash, 64)
}

func TestDerive_DifferingSignalsYieldDifferentHashes(t *testing.T) {
	base := domain.TransportSignals{IP: "203.0.113.7", ASN: "AS15169", DeviceType: "desktop"}
	other := base
	other.IP = "198.51.100.9"

	assert.NotEqual(t, Derive(base).Hash, Derive(other).Hash)
}

func TestDerive_PropagatesFieldsVerbatim(t *testing.T) {
	signals := domain.TransportSignals{
		Country: "FR", ASN: "AS12322", BotScore: 0.87,
		JA4: "ja4value", JA3: "ja3value", UserAgent: "curl/8.0", DeviceType: "bot",
	}

	fp := Derive(signals)

	assert.Equal(t, "FR", fp.Country)
	assert.Equal(t, "AS12322", fp.ASN)
	assert.Equal(t, 0.87, fp.BotScore)
	assert.Equal(t, "ja4value", fp.JA4)
	assert.Equal(t, "ja3value", fp.JA3)
	assert.Equal(t, "curl/8.0", fp.UserAgent)
	assert.Equal(t, "bot", fp.DeviceType)
}

func TestDerive_MissingSignalsStillProduceAHash(t *testing.T) {
	fp := Derive(domain.TransportSignals{})
	assert.Len(t, fp.Hash, 64)
}

func TestEmailHash_Is16HexChars(t *testing.T) {
	h := EmailHash("alice@example.com")
	assert.Len(t, h, 16)
}

func TestEmailHash_IsStableForSameInput(t *testing.T) {
	assert.Equal(t, EmailHash("alice@example.com"), EmailHash("alice@example.com"))
}

func TestEmailHash_DiffersForDifferentInput(t *testing.T) {
	assert.NotEqual(t, EmailHash("alice@example.com"), EmailHash("bob@example.com"))
}
