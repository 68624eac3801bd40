package risk

import "strings"

var suspiciousPlusTags = map[string]struct{}{
	"spam": {}, "test": {}, "fake": {}, "junk": {}, "trash": {}, "bot": {},
}

var gmailDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
}

// normalisedEmailParts holds the pieces Normalise computes before they are
// assembled into a domain.NormalisedEmail — kept unexported since only this
// file's caller (the engine) needs the constructor.
type normalisedEmailParts struct {
	local         string
	plusTag       string
	hasPlusTag    bool
	suspiciousTag bool
	canonical     string
}

// normaliseLocalPart implements the plus-addressing rule: strip
// "+tag" to produce the local part the pattern detectors see, and
// separately fold in Gmail's interior-dot aliasing to produce the
// canonical identity key. The two are kept distinct: a local part's
// literal dots are still structural signal for the pattern-family
// extractor (e.g. "formatted" vs "simple"), even though Gmail itself
// ignores them for routing. Idempotent: normalising an already-normalised
// local part is a no-op.
func normaliseLocalPart(local, host string) normalisedEmailParts {
	base := local
	tag := ""
	hasTag := false

	if idx := strings.IndexByte(local, '+'); idx >= 0 {
		base = local[:idx]
		tag = local[idx+1:]
		hasTag = true
	}

	canonicalBase := base
	if _, isGmail := gmailDomains[strings.ToLower(host)]; isGmail {
		canonicalBase = strings.ReplaceAll(canonicalBase, ".", "")
	}

	_, suspicious := suspiciousPlusTags[strings.ToLower(tag)]
	if !suspicious && tag != "" && isAllDigits(tag) {
		suspicious = true
	}

	return normalisedEmailParts{
		local:         base,
		plusTag:       tag,
		hasPlusTag:    hasTag,
		suspiciousTag: suspicious,
		canonical:     canonicalBase + "@" + strings.ToLower(host),
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
