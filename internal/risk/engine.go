package risk

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stoik/emailrisk/internal/domain"
	"github.com/stoik/emailrisk/internal/markov"
)

// Engine runs components C through H of the pipeline for one email, given a
// snapshot of reference data. It holds no per-request mutable state —
// the "no per-request mutable shared state" rule — everything is
// passed in and returned.
type Engine struct {
	markov *markov.Ensemble
}

// NewEngine constructs an Engine. The Markov ensemble is fixed at process
// start (models are trained offline, never online).
func NewEngine() *Engine {
	return &Engine{markov: markov.NewEnsemble()}
}

// Evaluate runs format validation, domain classification, the pattern
// detectors, the family extractor and the Markov ensemble, then aggregates
// them into a decision. Pattern detectors run concurrently via errgroup
// since they are pure and read-only; their results are
// reassembled in the fixed order patternDetectors() returns so the result
// bundle's field-by-name references never depend on goroutine scheduling.
func (e *Engine) Evaluate(ctx context.Context, local, host string, ref referenceLookup) (domain.DetectorSignals, domain.DomainResult, error) {
	format := ValidateFormat(local, host)

	domainResult := ClassifyDomain(host, ref)

	if !format.Valid {
		return domain.DetectorSignals{Format: format, Domain: domainResult}, domainResult, nil
	}

	parts := normaliseLocalPart(local, host)
	ne := domain.NormalisedEmail{
		Local:         parts.local,
		Domain:        host,
		PlusTag:       parts.plusTag,
		HasPlusTag:    parts.hasPlusTag,
		SuspiciousTag: parts.suspiciousTag,
		Canonical:     parts.canonical,
	}

	detectors := patternDetectors(ref.KeyboardLayouts())
	results := make([]DetectorResult, len(detectors))

	g, _ := errgroup.WithContext(ctx)
	for i, d := range detectors {
		i, d := i, d
		g.Go(func() error {
			results[i] = d.Run(ne)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.DetectorSignals{}, domainResult, err
	}

	sequential := results[0].Raw.(domain.SequentialResult)
	dated := results[1].Raw.(domain.DatedResult)
	plusAddressing := results[2].Raw.(domain.PlusAddressingResult)
	keyboardWalk := results[3].Raw.(domain.KeyboardWalkResult)
	gibberish := results[4].Raw.(domain.GibberishResult)

	family := ExtractFamily(ne, sequential, dated, domainResult)

	mk := markovDetector{ensemble: e.markov}
	markovResult := mk.Run(ne).Raw.(domain.MarkovEnsembleResult)

	signals := domain.DetectorSignals{
		Format:         format,
		Domain:         domainResult,
		Sequential:     sequential,
		Dated:          dated,
		PlusAddressing: plusAddressing,
		KeyboardWalk:   keyboardWalk,
		Gibberish:      gibberish,
		Family:         family,
		Markov:         markovResult,
	}

	return signals, domainResult, nil
}
