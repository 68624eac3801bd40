package refdata

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV { return &fakeKV{data: make(map[string][]byte)} }

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) { return f.data[key], nil }
func (f *fakeKV) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	return nil
}
func (f *fakeKV) Delete(_ context.Context, key string) error { delete(f.data, key); return nil }
func (f *fakeKV) Close() error                               { return nil }

type fakeSource struct {
	lines map[string][]string
	err   error
}

func (f *fakeSource) Fetch(_ context.Context, table string) ([]string, []string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.lines[table], []string{"https://example.test/" + table}, nil
}

func TestStore_UsesFallbackDataBeforeAnyRefresh(t *testing.T) {
	store := NewStore(newFakeKV(), &fakeSource{}, zerolog.Nop())

	assert.True(t, store.IsDisposable("tempmail.com"))
	assert.True(t, store.IsFreeProvider("gmail.com"))

	profile, score, tld := store.TLDProfile("example.tk")
	assert.Equal(t, "tk", tld)
	assert.Equal(t, 3.0, profile.RiskMultiplier)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestStore_UnknownTLDGetsModerateDefault(t *testing.T) {
	store := NewStore(newFakeKV(), &fakeSource{}, zerolog.Nop())

	_, score, _ := store.TLDProfile("example.zzzz")
	assert.InDelta(t, 0.15, score, 1e-9)
}

func TestStore_RefreshUpdatesSnapshotAndPersistsToKV(t *testing.T) {
	kv := newFakeKV()
	source := &fakeSource{lines: map[string][]string{
		tableDisposable: {"newdisposable.com", "# comment", "newdisposable.com", ""},
	}}
	store := NewStore(kv, source, zerolog.Nop())

	report := store.Refresh(context.Background(), tableDisposable)

	require.NoError(t, report.Err)
	assert.Equal(t, 1, report.Count)
	assert.True(t, store.IsDisposable("newdisposable.com"))
	assert.NotNil(t, kv.data[kvKeyDisposable])
}

func TestStore_RefreshFailureRetainsPriorSnapshot(t *testing.T) {
	kv := newFakeKV()
	source := &fakeSource{err: assertErr("source down")}
	store := NewStore(kv, source, zerolog.Nop())

	report := store.Refresh(context.Background(), tableDisposable)

	assert.Error(t, report.Err)
	assert.True(t, store.IsDisposable("tempmail.com")) // fallback data untouched
}

func TestStore_MatchesDisposablePatternIsCaseInsensitive(t *testing.T) {
	store := NewStore(newFakeKV(), &fakeSource{}, zerolog.Nop())

	assert.True(t, store.MatchesDisposablePattern("MyTempMailBox.example"))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
