package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			hits.Add(1)
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func deadEndpoint(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()
	return url
}

func TestResolverPinsFirstHealthyCandidate(t *testing.T) {
	var hits atomic.Int64
	live := healthServer(t, &hits)
	dead := deadEndpoint(t)

	resolver := NewResolver([]string{dead, live.URL})

	base, err := resolver.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, live.URL, base)

	// pinned: repeated Current calls must not probe again
	probes := hits.Load()
	for i := 0; i < 3; i++ {
		base, err := resolver.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, live.URL, base)
	}
	assert.Equal(t, probes, hits.Load())
}

func TestResolverReprobesAfterInvalidate(t *testing.T) {
	var hits atomic.Int64
	live := healthServer(t, &hits)

	resolver := NewResolver([]string{live.URL})

	_, err := resolver.Current(context.Background())
	require.NoError(t, err)
	first := hits.Load()

	resolver.Invalidate()

	_, err = resolver.Current(context.Background())
	require.NoError(t, err)
	assert.Greater(t, hits.Load(), first)
}

func TestResolverSlowCandidateLosesRace(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer slow.Close()

	var hits atomic.Int64
	fast := healthServer(t, &hits)

	resolver := NewResolver([]string{slow.URL, fast.URL})

	start := time.Now()
	base, err := resolver.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fast.URL, base)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestResolverNoCandidates(t *testing.T) {
	resolver := NewResolver(nil)
	_, err := resolver.Probe(context.Background())
	assert.ErrorIs(t, err, ErrNoEndpoint)
}

func TestResolverAllDead(t *testing.T) {
	resolver := NewResolver([]string{deadEndpoint(t), deadEndpoint(t)})
	resolver.ProbeTimeout = time.Second

	_, err := resolver.Probe(context.Background())
	assert.ErrorIs(t, err, ErrNoEndpoint)
}
