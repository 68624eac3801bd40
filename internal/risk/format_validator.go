package risk

import (
	"math"
	"regexp"
	"strings"

	"github.com/stoik/emailrisk/internal/domain"
)

const (
	maxLocalPartLen = 64
	maxDomainLen    = 255
)

// localPartGrammar is an RFC-5322-lite grammar for the local part: letters,
// digits and the common punctuation atext allows, dots only when not
// leading/trailing/doubled, plus one '+' for addressing tags.
var localPartGrammar = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~.-]+$`)

// SplitEmail splits raw on the final '@'. An email with zero or more than
// one '@' is never valid, so the split always takes the last occurrence to
// match RFC-5322's own final-@ convention.
func SplitEmail(raw string) (local, host string, ok bool) {
	idx := strings.LastIndexByte(raw, '@')
	if idx <= 0 || idx == len(raw)-1 {
		return "", "", false
	}
	return raw[:idx], raw[idx+1:], true
}

// ValidateFormat checks length caps, grammar, and
// Shannon-entropy scoring of the local part.
func ValidateFormat(local, host string) domain.FormatResult {
	if local == "" || host == "" {
		return domain.FormatResult{Valid: false, Reason: "empty_local_or_domain"}
	}
	if len(local) > maxLocalPartLen {
		return domain.FormatResult{Valid: false, LocalPartLength: len(local), Reason: "local_part_too_long"}
	}
	if len(host) > maxDomainLen {
		return domain.FormatResult{Valid: false, LocalPartLength: len(local), Reason: "domain_too_long"}
	}
	if !localPartGrammar.MatchString(local) {
		return domain.FormatResult{Valid: false, LocalPartLength: len(local), Reason: "invalid_local_part_characters"}
	}
	if local[0] == '.' || local[len(local)-1] == '.' || strings.Contains(local, "..") {
		return domain.FormatResult{Valid: false, LocalPartLength: len(local), Reason: "malformed_dot_placement"}
	}
	if !strings.Contains(host, ".") {
		return domain.FormatResult{Valid: false, LocalPartLength: len(local), Reason: "domain_missing_tld"}
	}

	return domain.FormatResult{
		Valid:           true,
		EntropyScore:    shannonEntropy(local),
		Diversity:       charClassDiversity(local),
		LocalPartLength: len(local),
	}
}

// shannonEntropy computes Shannon entropy over the local part's character
// distribution, normalised to [0,1] by dividing by log2(max(2, |local|)).
func shannonEntropy(local string) float64 {
	if local == "" {
		return 0
	}
	counts := make(map[rune]int)
	for _, r := range local {
		counts[r]++
	}
	n := float64(len(local))
	h := 0.0
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	normaliser := math.Log2(math.Max(2, n))
	if normaliser == 0 {
		return 0
	}
	return math.Max(0, math.Min(1, h/normaliser))
}
