package v1

import (
	"context"
	"log"
	"time"

	"github.com/avast/retry-go/v4"
)

type SyncResult struct {
	// Delivered actions now exist on the server and left the queue.
	Delivered int
	// Rejected actions reached the server and were refused; they also
	// leave the queue, since resending the same payload cannot succeed.
	// A punch that was already delivered by an earlier, half-failed sync
	// lands here as a duplicate and is safely dropped.
	Rejected int
	// Remaining actions are still queued for the next refresh.
	Remaining int
}

const (
	syncAttempts = 3
	syncDelay    = 2 * time.Second
)

// Sync drains the local queue in order. Transient failures are retried a
// bounded number of times with a fixed delay; once an action keeps
// failing the pass stops, leaving the rest queued, so a dead network
// does not turn into a retry storm.
func (c *PontualClient) Sync(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}
	actions := c.Queue.Snapshot()

	for i, action := range actions {
		if action.Kind != ActionPunch && action.Kind != ActionAdjustment {
			// from a newer app version; leave it for that version
			continue
		}
		err := retry.Do(
			func() error { return c.deliver(ctx, action) },
			retry.Context(ctx),
			retry.Attempts(syncAttempts),
			retry.Delay(syncDelay),
			retry.DelayType(retry.FixedDelay),
			retry.RetryIf(IsTransient),
			retry.LastErrorOnly(true),
		)

		switch {
		case err == nil:
			if rmErr := c.Queue.Remove(action.LocalID); rmErr != nil {
				return result, rmErr
			}
			result.Delivered++
		case !IsTransient(err):
			log.Printf("queued %s %s rejected by server: %v", action.Kind, action.LocalID, err)
			if rmErr := c.Queue.Remove(action.LocalID); rmErr != nil {
				return result, rmErr
			}
			result.Rejected++
		default:
			result.Remaining = len(actions) - i
			return result, err
		}
	}

	return result, nil
}

func (c *PontualClient) deliver(ctx context.Context, action QueuedAction) error {
	var path string
	switch action.Kind {
	case ActionPunch:
		path = "/api/v1/punches"
	case ActionAdjustment:
		path = "/api/v1/adjustments"
	}

	_, err := c.transportPostRaw(ctx, path, action.Payload)
	return err
}

// transportPostRaw sends an already-marshalled payload, so the queued
// bytes are delivered exactly as the user produced them.
func (c *PontualClient) transportPostRaw(ctx context.Context, path string, payload []byte) (*Response, error) {
	return c.Transport.do(ctx, "POST", path, rawJSON(payload), nil)
}

// rawJSON passes pre-encoded bytes through the transport's marshalling.
type rawJSON []byte

func (r rawJSON) MarshalJSON() ([]byte, error) {
	return r, nil
}
