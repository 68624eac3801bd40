package risk

import (
	"regexp"
	"strings"

	"github.com/stoik/emailrisk/internal/domain"
)

// referenceLookup is the subset of internal/refdata.Store's read contract
// the domain classifier and keyboard-walk detector need. Declaring it here
// (rather than importing internal/refdata directly) keeps internal/risk
// dependency-free of the reference-data subsystem's refresh machinery.
type referenceLookup interface {
	IsDisposable(host string) bool
	MatchesDisposablePattern(host string) bool
	IsFreeProvider(host string) bool
	TLDProfile(host string) (domain.TLDProfile, float64, string)
	KeyboardLayouts() map[string][]string
}

var consonantOnlyRun = regexp.MustCompile(`^[bcdfghjklmnpqrstvwxyz]{5,}$`)
var allNumericLabel = regexp.MustCompile(`^[0-9]+$`)

// ClassifyDomain implements the domain reputation-score formula.
func ClassifyDomain(host string, ref referenceLookup) domain.DomainResult {
	isDisposable := ref.IsDisposable(host)
	matchesPattern := ref.MatchesDisposablePattern(host)
	isFree := ref.IsFreeProvider(host)
	profile, tldScore, tld := ref.TLDProfile(host)

	labels := strings.Split(host, ".")
	subdomainDepth := 0
	if len(labels) > 2 {
		subdomainDepth = len(labels) - 2
	}

	score := 0.0
	if isDisposable {
		score += 0.9
	}
	if matchesPattern {
		score += 0.3
	}

	heuristics := 0
	if len(host) > 40 {
		heuristics++
	}
	if subdomainDepth > 3 {
		heuristics++
	}
	for _, label := range labels {
		if allNumericLabel.MatchString(label) {
			heuristics++
			break
		}
	}
	for _, label := range labels {
		if len(label) < 3 {
			heuristics++
			break
		}
	}
	if strings.Count(host, "-") > 3 {
		heuristics++
	}
	for _, label := range labels {
		if consonantOnlyRun.MatchString(label) {
			heuristics++
			break
		}
	}
	score += 0.1 * float64(heuristics)

	if subdomainDepth > 2 {
		score += 0.1 * float64(subdomainDepth-2)
	}

	if score > 1 {
		score = 1
	}

	reason := ""
	switch {
	case isDisposable:
		reason = "exact_disposable_match"
	case matchesPattern:
		reason = "disposable_pattern_match"
	case heuristics > 0:
		reason = "suspicious_domain_heuristics"
	}

	return domain.DomainResult{
		Domain:                   host,
		TLD:                      tld,
		IsDisposable:             isDisposable,
		IsFreeProvider:           isFree,
		MatchesDisposablePattern: matchesPattern,
		SubdomainDepth:           subdomainDepth,
		HasValidTLD:              tld != "",
		ReputationScore:          score,
		TLDCategory:              profile.Category,
		TLDRiskScore:             tldScore,
		Reason:                   reason,
	}
}
