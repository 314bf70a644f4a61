package v1

import (
	"os"
)

// PontualClient is the device-side API client. It keeps working when the
// network does not: failed submissions land in a durable queue, reads
// fall back to the last good snapshot, and the endpoint resolver works
// through the candidate list when the primary address is unreachable.
type PontualClient struct {
	Transport   *Transport
	Resolver    *Resolver
	Queue       *Queue
	Cache       *Cache
	Punches     *PunchEndpoint
	Adjustments *AdjustmentEndpoint
}

// NewPontualClient initializes the API client. candidates is the ordered
// list of base addresses (primary first); dataDir holds the local queue
// and snapshot cache.
func NewPontualClient(candidates []string, token string, dataDir string) (*PontualClient, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}

	queue, err := OpenQueue(dataDir)
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(candidates)
	transport := NewTransport(resolver, token)
	cache := NewCache(dataDir)

	return &PontualClient{
		Transport:   transport,
		Resolver:    resolver,
		Queue:       queue,
		Cache:       cache,
		Punches:     &PunchEndpoint{transport: transport, queue: queue, cache: cache},
		Adjustments: &AdjustmentEndpoint{transport: transport, queue: queue, cache: cache},
	}, nil
}
