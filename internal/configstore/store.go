// Package configstore implements the layered configuration subsystem:
// defaults ← KV document ← secrets overlay, validated and
// cached in-process, with patch/reset/invalidate semantics.
//
// It follows the same cache discipline as internal/refdata (copy-on-write
// snapshot behind an atomic.Pointer) but is kept a separate package because
// Configuration and reference data are treated as distinct subsystems.
package configstore

import (
	"context"
	"sync"
	"sync/atomic"

	"dario.cat/mergo"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/stoik/emailrisk/internal/domain"
	"github.com/stoik/emailrisk/internal/ports"
)

const kvKeyConfig = "config.json"

// Store owns the merged, validated Configuration singleton.
type Store struct {
	snap atomic.Pointer[domain.Configuration]

	kv      ports.KVStore
	secrets domain.Secrets
	logger  zerolog.Logger

	mu sync.Mutex
}

// NewStore constructs a Store. secrets is the process's secrets overlay
// (from environment or a secrets manager, out of scope for this package),
// applied on top of every load.
func NewStore(kv ports.KVStore, secrets domain.Secrets, logger zerolog.Logger) *Store {
	return &Store{
		kv:      kv,
		secrets: secrets,
		logger:  logger.With().Str("component", "configstore").Logger(),
	}
}

// Get returns the cached configuration, loading it through on first use.
func (s *Store) Get(ctx context.Context) (domain.Configuration, error) {
	if cfg := s.snap.Load(); cfg != nil {
		return *cfg, nil
	}
	return s.load(ctx)
}

// Invalidate clears the in-process cache; the next Get reloads from the KV
// store.
func (s *Store) Invalidate() {
	s.snap.Store(nil)
}

func (s *Store) load(ctx context.Context) (domain.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg := s.snap.Load(); cfg != nil {
		return *cfg, nil
	}

	cfg := defaultConfiguration()

	raw, err := s.kv.Get(ctx, kvKeyConfig)
	if err != nil {
		return cfg, domain.NewStoreUnavailable("failed to read config.json", err)
	}
	if raw != nil {
		var override domain.Configuration
		if err := json.Unmarshal(raw, &override); err != nil {
			return cfg, domain.NewInvalidConfig("stored config.json is not valid JSON", err)
		}
		if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
			return cfg, domain.NewInternal("failed to merge stored configuration", err)
		}
	}

	cfg.Secrets = s.secrets

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	s.snap.Store(&cfg)
	return cfg, nil
}

// Patch merges patch into the current configuration (pointer fields only
// override what's set), validates the result, writes it to the KV store,
// and publishes it as the new cache entry. On validation failure the
// current configuration is left untouched.
func (s *Store) Patch(ctx context.Context, patch domain.ConfigPatch) (domain.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.currentLocked(ctx)
	if err != nil {
		return current, err
	}

	next := current
	if patch.Thresholds != nil {
		next.Thresholds = *patch.Thresholds
	}
	if patch.Weights != nil {
		next.Weights = *patch.Weights
	}
	if patch.Flags != nil {
		next.Flags = *patch.Flags
	}
	if patch.Integration != nil {
		next.Integration = *patch.Integration
	}
	if patch.Secrets != nil {
		next.Secrets = *patch.Secrets
	}

	if err := Validate(next); err != nil {
		return current, err
	}

	if err := s.persist(ctx, next); err != nil {
		return current, err
	}

	s.snap.Store(&next)
	return next, nil
}

// Replace validates and writes cfg wholesale (the PUT endpoint). Unlike
// Patch, every field must be supplied — there are no partial semantics.
func (s *Store) Replace(ctx context.Context, cfg domain.Configuration) (domain.Configuration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	if err := s.persist(ctx, cfg); err != nil {
		return cfg, err
	}
	s.snap.Store(&cfg)
	return cfg, nil
}

// Reset deletes the KV document and clears the cache, reverting to
// defaults (plus the process secrets overlay) on next Get.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, kvKeyConfig); err != nil {
		return domain.NewStoreUnavailable("failed to delete config.json", err)
	}
	s.snap.Store(nil)
	return nil
}

func (s *Store) currentLocked(ctx context.Context) (domain.Configuration, error) {
	if cfg := s.snap.Load(); cfg != nil {
		return *cfg, nil
	}
	// Inline the unlocked load body since s.mu is already held.
	cfg := defaultConfiguration()
	raw, err := s.kv.Get(ctx, kvKeyConfig)
	if err != nil {
		return cfg, domain.NewStoreUnavailable("failed to read config.json", err)
	}
	if raw != nil {
		var override domain.Configuration
		if err := json.Unmarshal(raw, &override); err != nil {
			return cfg, domain.NewInvalidConfig("stored config.json is not valid JSON", err)
		}
		if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
			return cfg, domain.NewInternal("failed to merge stored configuration", err)
		}
	}
	cfg.Secrets = s.secrets
	return cfg, Validate(cfg)
}

func (s *Store) persist(ctx context.Context, cfg domain.Configuration) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return domain.NewInternal("failed to marshal configuration", err)
	}
	if err := s.kv.Set(ctx, kvKeyConfig, raw, 0); err != nil {
		return domain.NewStoreUnavailable("failed to write config.json", err)
	}
	return nil
}
