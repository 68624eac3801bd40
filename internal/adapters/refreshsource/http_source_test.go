package refreshsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_FetchParsesNewlineDelimitedList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/disposable_domains", r.URL.Path)
		_, _ = w.Write([]byte("tempmail.com\n# comment\n\nmailinator.com\n"))
	}))
	defer srv.Close()

	source := New(srv.URL, zerolog.Nop())

	lines, sources, err := source.Fetch(context.Background(), "disposable_domains")

	require.NoError(t, err)
	assert.Equal(t, []string{"tempmail.com", "mailinator.com"}, lines)
	assert.Equal(t, []string{srv.URL + "/disposable_domains"}, sources)
}

func TestHTTPSource_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	source := New(srv.URL, zerolog.Nop())

	_, _, err := source.Fetch(context.Background(), "tld_risk")

	require.Error(t, err)
}

func TestHTTPSource_TransportFailureIsAnError(t *testing.T) {
	source := New("http://127.0.0.1:0", zerolog.Nop())

	_, _, err := source.Fetch(context.Background(), "free_providers")

	require.Error(t, err)
}
