package v1

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pontual.app/pontual/model"
)

// ErrReasonTooShort is rejected locally before any network attempt:
// sending it would only get the same rejection back from the server.
var ErrReasonTooShort = errors.New("reason must have at least 10 characters")

type AdjustmentEndpoint struct {
	transport *Transport
	queue     *Queue
	cache     *Cache
}

type AdjustmentSubmission struct {
	PunchID      string `json:"punchId"`
	ProposedTime string `json:"proposedTime"`
	Reason       string `json:"reason"`
}

type AdjustmentSubmitResult struct {
	Adjustment *model.Adjustment
	Queued     bool
	LocalID    string
}

type DecisionRequest struct {
	Decision         string `json:"decision"`
	ReviewerResponse string `json:"reviewerResponse,omitempty"`
}

// Submit files a correction request for a punch. Like punches, it is
// queued locally when the network fails.
func (e *AdjustmentEndpoint) Submit(ctx context.Context, punchID string, proposed time.Time, reason string) (*AdjustmentSubmitResult, error) {
	if punchID == "" {
		return nil, errors.New("punchId is required")
	}
	if len(strings.TrimSpace(reason)) < 10 {
		return nil, ErrReasonTooShort
	}

	payload := AdjustmentSubmission{
		PunchID:      punchID,
		ProposedTime: proposed.Format(wireTimeLayout),
		Reason:       strings.TrimSpace(reason),
	}

	resp, err := e.transport.Post(ctx, "/api/v1/adjustments", payload)
	if err != nil {
		if !IsTransient(err) {
			return nil, err
		}
		localID, qErr := e.queue.Enqueue(ActionAdjustment, payload)
		if qErr != nil {
			return nil, err
		}
		return &AdjustmentSubmitResult{Queued: true, LocalID: localID}, nil
	}

	var adjustment model.Adjustment
	if err := decodeData(resp, &adjustment); err != nil {
		return nil, err
	}
	return &AdjustmentSubmitResult{Adjustment: &adjustment}, nil
}

// List returns the subject's adjustments, falling back to the last
// cached list so history rendering never breaks offline.
func (e *AdjustmentEndpoint) List(ctx context.Context) ([]model.Adjustment, error) {
	resp, err := e.transport.Get(ctx, "/api/v1/adjustments", nil)
	if err != nil {
		if !IsTransient(err) {
			return nil, err
		}
		var cached []model.Adjustment
		if _, ok := e.cache.Get("adjustments", &cached); ok {
			return cached, nil
		}
		return nil, err
	}

	var adjustments []model.Adjustment
	if err := decodeData(resp, &adjustments); err != nil {
		return nil, err
	}
	_ = e.cache.Put("adjustments", adjustments)
	return adjustments, nil
}

// Withdraw deletes one of the subject's own pending adjustments.
func (e *AdjustmentEndpoint) Withdraw(ctx context.Context, id string) error {
	_, err := e.transport.Delete(ctx, "/api/v1/adjustments/"+id)
	return err
}

// Decide approves or rejects a pending adjustment. Reviewer only.
// Failures are reported, never retried or queued: a decision is too
// consequential to replay blindly.
func (e *AdjustmentEndpoint) Decide(ctx context.Context, id string, decision model.AdjustmentStatus, reviewerResponse string) (*model.Adjustment, error) {
	if !decision.Terminal() {
		return nil, fmt.Errorf("invalid decision %q", decision)
	}

	resp, err := e.transport.Put(ctx, "/api/v1/adjustments/"+id, DecisionRequest{
		Decision:         string(decision),
		ReviewerResponse: reviewerResponse,
	})
	if err != nil {
		return nil, err
	}

	var adjustment model.Adjustment
	if err := decodeData(resp, &adjustment); err != nil {
		return nil, err
	}
	return &adjustment, nil
}
