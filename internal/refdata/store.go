// Package refdata implements the reference-data subsystem:
// cached, auto-refreshed lookup tables for disposable domains, free
// providers, TLD risk and keyboard layouts.
//
// Grounded on other_examples/857117f4_ilyasaftr-ory-kratos-disposable's
// DisposableEmailService: a mutex/atomic-guarded snapshot, a ticker-driven
// background refresh loop, and explicit fail-open degraded-mode logging on
// total source failure. Generalised here from one table to four, and from
// a plain RWMutex map to an atomic.Pointer copy-on-write snapshot so a
// refresh never blocks a request in flight.
package refdata

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/stoik/emailrisk/internal/domain"
	"github.com/stoik/emailrisk/internal/ports"
)

const (
	tableDisposable    = "disposable_domains"
	tableFreeProviders = "free_providers"
	tableTLDRisk       = "tld_risk"

	kvKeyDisposable    = "domains"
	kvKeyFreeProviders = "free_providers"
	kvKeyTLDRisk       = "tld_risk"

	defaultRefreshInterval = 6 * time.Hour
)

// Store is the process-scoped singleton that owns the four reference
// tables. It is safe for concurrent use; readers never block on a refresh.
type Store struct {
	snap atomic.Pointer[snapshot]

	kv     ports.KVStore
	source ports.RefreshSource
	logger zerolog.Logger

	refreshInterval time.Duration

	mu sync.Mutex // serialises read-modify-write of the snapshot during refresh
	sf singleflight.Group
}

// NewStore constructs a Store seeded with the compiled-in fallback data. It
// is immediately usable before Start is ever called — there is no "not
// ready" state visible to callers, only progressively better data.
func NewStore(kv ports.KVStore, source ports.RefreshSource, logger zerolog.Logger) *Store {
	s := &Store{
		kv:              kv,
		source:          source,
		logger:          logger.With().Str("component", "refdata").Logger(),
		refreshInterval: defaultRefreshInterval,
	}
	s.snap.Store(fallbackSnapshot())
	return s
}

// WithRefreshInterval overrides the default 6h refresh interval.
func (s *Store) WithRefreshInterval(d time.Duration) *Store {
	s.refreshInterval = d
	return s
}

// Start loads whatever is cached in the KV store (falling back to the
// compiled-in data already in place) and starts the background refresh
// loop. It never returns an error: a failed initial load just means the
// fallback snapshot stays live until the first successful refresh.
func (s *Store) Start(ctx context.Context) {
	s.loadFromKV(ctx)

	go s.autoRefresh(ctx, tableDisposable)
	go s.autoRefresh(ctx, tableFreeProviders)
	go s.autoRefresh(ctx, tableTLDRisk)
}

func (s *Store) loadFromKV(ctx context.Context) {
	if raw, err := s.kv.Get(ctx, kvKeyDisposable); err == nil && raw != nil {
		s.applyDisposablePayload(raw)
	}
	if raw, err := s.kv.Get(ctx, kvKeyFreeProviders); err == nil && raw != nil {
		s.applyFreeProviderPayload(raw)
	}
	if raw, err := s.kv.Get(ctx, kvKeyTLDRisk); err == nil && raw != nil {
		s.applyTLDPayload(raw)
	}
}

// autoRefresh runs the jittered fixed-interval refresh loop for one table.
// Cancelling ctx stops the loop; the snapshot in flight at cancellation
// time is left untouched (a cancelled refresh must leave the
// previously cached table intact).
func (s *Store) autoRefresh(ctx context.Context, table string) {
	interval := s.jittered(s.refreshInterval)
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if report := s.Refresh(ctx, table); report.Err != nil {
				s.logger.Warn().Err(report.Err).Str("table", table).Msg("reference table refresh failed, retaining cached data")
			}
			timer.Reset(s.jittered(s.refreshInterval))
		}
	}
}

// jittered adds up to ±10% jitter to d so many processes don't refresh in
// lockstep and hammer the source simultaneously.
func (s *Store) jittered(d time.Duration) time.Duration {
	jitter := time.Duration(rand.Int63n(int64(d) / 5)) - d/10
	return d + jitter
}

// Refresh fetches table from the refresh source, deduplicates, writes the
// new table (plus metadata) to the KV store, and atomically publishes a new
// snapshot. On any failure the prior snapshot and KV contents are retained
// (fail-open; never fail closed for a transient source outage).
func (s *Store) Refresh(ctx context.Context, table string) domain.UpdateReport {
	v, err, _ := s.sf.Do(table, func() (interface{}, error) {
		return s.refreshOnce(ctx, table)
	})
	if err != nil {
		return domain.UpdateReport{Table: table, Err: err}
	}
	return v.(domain.UpdateReport)
}

func (s *Store) refreshOnce(ctx context.Context, table string) (domain.UpdateReport, error) {
	lines, sources, err := s.source.Fetch(ctx, table)
	if err != nil {
		return domain.UpdateReport{}, fmt.Errorf("fetch %s: %w", table, err)
	}

	deduped := dedupeLowercase(lines)

	var payload []byte
	switch table {
	case tableDisposable:
		payload, err = json.Marshal(deduped)
		if err == nil {
			s.applyDisposablePayload(payload)
		}
	case tableFreeProviders:
		payload, err = json.Marshal(deduped)
		if err == nil {
			s.applyFreeProviderPayload(payload)
		}
	case tableTLDRisk:
		return domain.UpdateReport{}, fmt.Errorf("tld_risk has no newline-delimited refresh format")
	default:
		return domain.UpdateReport{}, fmt.Errorf("unknown table %q", table)
	}
	if err != nil {
		return domain.UpdateReport{}, fmt.Errorf("marshal %s: %w", table, err)
	}

	kvKey := kvKeyFor(table)
	if werr := s.kv.Set(ctx, kvKey, payload, 0); werr != nil {
		s.logger.Warn().Err(werr).Str("table", table).Msg("refreshed table could not be persisted to KV store, serving from memory only")
	}

	report := domain.UpdateReport{
		Table:       table,
		Count:       len(deduped),
		RefreshedAt: time.Now(),
		Sources:     sources,
	}
	s.recordMetadata(table, report)
	return report, nil
}

func kvKeyFor(table string) string {
	switch table {
	case tableDisposable:
		return kvKeyDisposable
	case tableFreeProviders:
		return kvKeyFreeProviders
	default:
		return table
	}
}

func dedupeLowercase(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func (s *Store) applyDisposablePayload(raw []byte) {
	var domains []string
	if err := json.Unmarshal(raw, &domains); err != nil {
		s.logger.Warn().Err(err).Msg("malformed disposable domains payload, keeping current snapshot")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap.Load().clone()
	next.disposableDomains = make(map[string]struct{}, len(domains))
	for _, d := range domains {
		next.disposableDomains[d] = struct{}{}
	}
	s.snap.Store(next)
}

func (s *Store) applyFreeProviderPayload(raw []byte) {
	var providers []string
	if err := json.Unmarshal(raw, &providers); err != nil {
		s.logger.Warn().Err(err).Msg("malformed free provider payload, keeping current snapshot")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap.Load().clone()
	next.freeProviders = make(map[string]struct{}, len(providers))
	for _, p := range providers {
		next.freeProviders[p] = struct{}{}
	}
	s.snap.Store(next)
}

func (s *Store) applyTLDPayload(raw []byte) {
	var table map[string]domain.TLDProfile
	if err := json.Unmarshal(raw, &table); err != nil {
		s.logger.Warn().Err(err).Msg("malformed tld risk payload, keeping current snapshot")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap.Load().clone()
	next.tldRisk = table
	s.snap.Store(next)
}

func (s *Store) recordMetadata(table string, report domain.UpdateReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap.Load().clone()
	next.metadata[table] = domain.ReferenceMetadata{
		Count:       report.Count,
		LastUpdated: report.RefreshedAt,
		Sources:     report.Sources,
	}
	s.snap.Store(next)
}

// IsDisposable reports exact membership of domain in the disposable set.
func (s *Store) IsDisposable(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	_, ok := s.snap.Load().disposableDomains[host]
	return ok
}

// MatchesDisposablePattern reports whether domain matches any compiled
// temp-mail-morphology regex, case-insensitively, matched anywhere in the
// host.
func (s *Store) MatchesDisposablePattern(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	for _, p := range s.snap.Load().disposablePatterns {
		if p.MatchString(host) {
			return true
		}
	}
	return false
}

// IsFreeProvider reports exact membership of domain in the free-provider set.
func (s *Store) IsFreeProvider(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	_, ok := s.snap.Load().freeProviders[host]
	return ok
}

// TLDProfile returns the risk profile for domain's effective TLD, its
// normalised risk score, and the TLD string itself.
func (s *Store) TLDProfile(host string) (domain.TLDProfile, float64, string) {
	tld := extractTLD(host)
	snap := s.snap.Load()
	profile, known := snap.tldRisk[tld]
	if !known {
		profile = domain.TLDProfile{Category: domain.TLDUnknown, RiskMultiplier: 0, Description: "unrecognised TLD"}
	}
	return profile, tldRiskScore(profile, known), tld
}

// KeyboardLayouts returns the static keyboard-layout table.
func (s *Store) KeyboardLayouts() map[string][]string {
	return s.snap.Load().keyboardLayouts
}

// Metadata returns the provenance metadata for table, if any refresh has
// ever completed for it.
func (s *Store) Metadata(table string) (domain.ReferenceMetadata, bool) {
	m, ok := s.snap.Load().metadata[table]
	return m, ok
}
