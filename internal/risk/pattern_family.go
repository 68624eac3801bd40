package risk

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/stoik/emailrisk/internal/domain"
)

var testWordDenylist = buildSet([]string{
	"test", "admin", "user", "demo", "temp", "example", "sample",
})

// ExtractFamily implements the priority-ordered family-string
// and type assignment.
func ExtractFamily(ne domain.NormalisedEmail, sequential domain.SequentialResult, dated domain.DatedResult, domainResult domain.DomainResult) domain.PatternFamily {
	base := baseStructure(ne.Local)

	var family string
	var ptype domain.PatternFamilyType
	var confidence float64

	switch {
	case dated.Hit && dated.Confidence >= 0.6:
		family = base + "." + dateToken(dated.Shape) + "@" + ne.Domain
		ptype = domain.PatternDated
		confidence = dated.Confidence

	case sequential.Hit && sequential.Confidence >= 0.5:
		family = base + ".NUM@" + ne.Domain
		ptype = domain.PatternSequential
		confidence = sequential.Confidence

	case ne.HasPlusTag:
		family = base + "+TAG@" + ne.Domain
		ptype = domain.PatternPlusAddress
		confidence = 0.5
		if ne.SuspiciousTag {
			confidence = 0.7
		}

	case looksRandom(ne.Local):
		family = "RANDOM@" + ne.Domain
		ptype = domain.PatternRandom
		confidence = 0.6

	case strings.ContainsAny(ne.Local, "._-"):
		family = base + "@" + ne.Domain
		ptype = domain.PatternFormatted
		confidence = 0.4

	default:
		family = base + "@" + ne.Domain
		ptype = domain.PatternSimple
		confidence = 0.3
	}

	hash := sha256.Sum256([]byte(family))
	familyHash := hex.EncodeToString(hash[:])[:16]

	riskScore := patternRiskScore(ptype, confidence, domainResult)

	return domain.PatternFamily{
		FamilyString: family,
		FamilyHash:   familyHash,
		Type:         ptype,
		Confidence:   confidence,
		Metadata:     map[string]string{"risk_score": formatScore(riskScore)},
	}
}

// PatternRisk returns the rolled-up risk score for a PatternFamily,
// recomputed directly (rather than parsed back out of Metadata) so callers
// that only have the PatternFamily can still use it.
func PatternRisk(pf domain.PatternFamily, domainResult domain.DomainResult) float64 {
	return patternRiskScore(pf.Type, pf.Confidence, domainResult)
}

func patternRiskScore(ptype domain.PatternFamilyType, confidence float64, domainResult domain.DomainResult) float64 {
	base := map[domain.PatternFamilyType]float64{
		domain.PatternSequential:  0.3,
		domain.PatternDated:       0.25,
		domain.PatternPlusAddress: 0.15,
		domain.PatternRandom:      0.4,
		domain.PatternFormatted:   0.1,
		domain.PatternSimple:      0.05,
		domain.PatternUnknown:     0.1,
	}[ptype]

	score := base + confidence*0.3

	if domainResult.IsFreeProvider && (ptype == domain.PatternSequential || ptype == domain.PatternDated) {
		score += 0.2
	}
	if domainResult.IsDisposable {
		score += 0.4
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// baseStructure replaces each '.'/'_'/'-'-separated segment of local with a
// token from {NUM, NAME, WORD, SHORT}.
func baseStructure(local string) string {
	segments := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(segments) == 0 {
		return "WORD"
	}
	tokens := make([]string, len(segments))
	for i, seg := range segments {
		tokens[i] = classifyToken(seg)
	}
	return strings.Join(tokens, ".")
}

func classifyToken(seg string) string {
	if seg == "" {
		return "SHORT"
	}
	if isAllDigits(seg) {
		return "NUM"
	}
	if len(seg) < 2 {
		return "SHORT"
	}
	if isAllLower(seg) && len(seg) >= 2 && len(seg) <= 15 {
		if _, denied := testWordDenylist[strings.ToLower(seg)]; !denied {
			return "NAME"
		}
	}
	return "WORD"
}

func isAllLower(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// looksRandom flags local parts with char-class diversity > 0.7,
// length >= 8, and a mix of letters and digits.
func looksRandom(local string) bool {
	if len(local) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	classes := make(map[rune]struct{})
	for _, r := range local {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
			classes['0'] = struct{}{}
		case unicode.IsLetter(r):
			hasLetter = true
			classes['a'] = struct{}{}
		default:
			classes['_'] = struct{}{}
		}
	}
	if !hasLetter || !hasDigit {
		return false
	}
	diversity := charClassDiversity(local)
	return diversity > 0.7
}

// charClassDiversity is the ratio of distinct characters to string length,
// used as a cheap proxy for "looks random" alongside the letter/digit mix
// check above.
func charClassDiversity(s string) float64 {
	distinct := make(map[rune]struct{})
	for _, r := range s {
		distinct[r] = struct{}{}
	}
	return float64(len(distinct)) / float64(len(s))
}

func dateToken(shape string) string {
	switch shape {
	case "full_date_8_digit":
		return "DATE"
	case "month_year_numeric", "month_year_text":
		return "MONTH-YEAR"
	case "trailing_2_digit_year":
		return "YY"
	default:
		return "YEAR"
	}
}

func formatScore(f float64) string {
	return fmt.Sprintf("%.3f", f)
}
