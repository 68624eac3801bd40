package httpapi

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stoik/emailrisk/internal/application"
	"github.com/stoik/emailrisk/internal/configstore"
	"github.com/stoik/emailrisk/internal/domain"
	"github.com/stoik/emailrisk/internal/refdata"
	"github.com/stoik/emailrisk/internal/risk"
)

type memKVStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKVStore() *memKVStore { return &memKVStore{data: map[string][]byte{}} }

func (m *memKVStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memKVStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKVStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKVStore) Close() error { return nil }

type noRefreshSource struct{}

func (noRefreshSource) Fetch(_ context.Context, _ string) ([]string, []string, error) {
	return nil, nil, nil
}

type discardSink struct{}

func (discardSink) Record(_ context.Context, _ domain.DecisionRecord) {}

type discardForwarder struct{}

func (discardForwarder) Forward(_ context.Context, _ []byte, _ map[string]string) error { return nil }

func newTestHandlers(t *testing.T) (*ValidateHandler, *AdminHandler, *configstore.Store) {
	t.Helper()
	logger := zerolog.Nop()
	kv := newMemKVStore()
	cfgStore := configstore.NewStore(kv, domain.Secrets{}, logger)
	refStore := refdata.NewStore(kv, noRefreshSource{}, logger)
	service := application.NewValidationService(cfgStore, refStore, risk.NewEngine(), discardSink{}, discardForwarder{}, logger)
	return NewValidateHandler(service, cfgStore, logger), NewAdminHandler(cfgStore, "test-admin-key"), cfgStore
}
