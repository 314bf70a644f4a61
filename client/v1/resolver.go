package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ErrNoEndpoint means no candidate answered the liveness probe.
var ErrNoEndpoint = errors.New("no reachable endpoint")

// Resolver holds the ordered list of candidate base addresses and pins
// whichever answers the liveness probe first. It is an explicit value
// threaded through the client, never a package global, so tests can
// inject fake endpoints.
type Resolver struct {
	ProbeTimeout time.Duration

	mu         sync.Mutex
	candidates []string
	current    string
	client     *http.Client
}

func NewResolver(candidates []string) *Resolver {
	return &Resolver{
		ProbeTimeout: 3 * time.Second,
		candidates:   candidates,
		client:       &http.Client{},
	}
}

// Current returns the pinned base URL, probing the candidates if nothing
// is pinned yet.
func (r *Resolver) Current(ctx context.Context) (string, error) {
	r.mu.Lock()
	if r.current != "" {
		defer r.mu.Unlock()
		return r.current, nil
	}
	r.mu.Unlock()

	return r.Probe(ctx)
}

// Invalidate drops the pinned endpoint so the next call probes again.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.current = ""
	r.mu.Unlock()
}

// Probe checks every candidate's /health concurrently and commits to the
// first that answers, cancelling the rest. Candidates that are down or
// slower simply lose the race.
func (r *Resolver) Probe(ctx context.Context) (string, error) {
	r.mu.Lock()
	candidates := make([]string, len(r.candidates))
	copy(candidates, r.candidates)
	timeout := r.ProbeTimeout
	r.mu.Unlock()

	if len(candidates) == 0 {
		return "", ErrNoEndpoint
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	alive := make(chan string, len(candidates))
	for _, candidate := range candidates {
		go func(base string) {
			if r.healthy(ctx, base) {
				alive <- base
			} else {
				alive <- ""
			}
		}(candidate)
	}

	for range candidates {
		select {
		case base := <-alive:
			if base != "" {
				r.mu.Lock()
				r.current = base
				r.mu.Unlock()
				return base, nil
			}
		case <-ctx.Done():
			return "", fmt.Errorf("%w: probe timed out", ErrNoEndpoint)
		}
	}

	return "", ErrNoEndpoint
}

func (r *Resolver) healthy(ctx context.Context, base string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
