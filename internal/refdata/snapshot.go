package refdata

import (
	"regexp"

	"github.com/stoik/emailrisk/internal/domain"
)

// snapshot is one copy-on-write view of every reference table. Readers take
// one snapshot per request; mutators build a new snapshot
// off-path and atomically swap the pointer in Store.
type snapshot struct {
	disposableDomains   map[string]struct{}
	disposablePatterns  []*regexp.Regexp
	freeProviders       map[string]struct{}
	tldRisk             map[string]domain.TLDProfile
	keyboardLayouts     map[string][]string

	metadata map[string]domain.ReferenceMetadata
}

// clone returns a deep-enough copy of s for a refresh to mutate one table
// without disturbing readers holding the previous snapshot.
func (s *snapshot) clone() *snapshot {
	n := &snapshot{
		disposableDomains:  make(map[string]struct{}, len(s.disposableDomains)),
		disposablePatterns: s.disposablePatterns,
		freeProviders:      make(map[string]struct{}, len(s.freeProviders)),
		tldRisk:            make(map[string]domain.TLDProfile, len(s.tldRisk)),
		keyboardLayouts:    s.keyboardLayouts,
		metadata:           make(map[string]domain.ReferenceMetadata, len(s.metadata)),
	}
	for k, v := range s.disposableDomains {
		n.disposableDomains[k] = v
	}
	for k, v := range s.freeProviders {
		n.freeProviders[k] = v
	}
	for k, v := range s.tldRisk {
		n.tldRisk[k] = v
	}
	for k, v := range s.metadata {
		n.metadata[k] = v
	}
	return n
}

func compiledFallbackPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(fallbackDisposablePatterns))
	for _, p := range fallbackDisposablePatterns {
		patterns = append(patterns, regexp.MustCompile("(?i)"+p))
	}
	return patterns
}

func fallbackSnapshot() *snapshot {
	disposable := make(map[string]struct{}, len(fallbackDisposableDomains))
	for k := range fallbackDisposableDomains {
		disposable[k] = struct{}{}
	}
	free := make(map[string]struct{}, len(fallbackFreeProviders))
	for k := range fallbackFreeProviders {
		free[k] = struct{}{}
	}
	tld := make(map[string]domain.TLDProfile, len(fallbackTLDRisk))
	for k, v := range fallbackTLDRisk {
		tld[k] = v
	}
	return &snapshot{
		disposableDomains:  disposable,
		disposablePatterns: compiledFallbackPatterns(),
		freeProviders:      free,
		tldRisk:            tld,
		keyboardLayouts:    KeyboardLayouts,
		metadata:           make(map[string]domain.ReferenceMetadata),
	}
}
