package v1

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"pontual.app/pontual/ledger"
	"pontual.app/pontual/model"
	"pontual.app/pontual/utils"
)

const wireTimeLayout = "2006-01-02T15:04:05"

type PunchEndpoint struct {
	transport *Transport
	queue     *Queue
	cache     *Cache
}

// PunchSubmission is the wire payload for one punch. Timestamp is the
// wall clock at the device, no zone.
type PunchSubmission struct {
	Kind      string `json:"kind"`
	Timestamp string `json:"timestamp"`
	Note      string `json:"note,omitempty"`
}

type SubmitResult struct {
	// Punch is the authoritative server copy when delivery succeeded.
	Punch *model.Punch
	// Queued means the action was saved locally and will sync later.
	Queued  bool
	LocalID string
}

type Summary struct {
	TotalPunches     int    `json:"totalPunches"`
	WorkedMinutes    int    `json:"workedMinutes"`
	WorkedHours      string `json:"workedHours"`
	CompleteDay      bool   `json:"completeDay"`
	NextExpectedKind string `json:"nextExpectedKind,omitempty"`
}

type TodayView struct {
	Date    string                  `json:"date"`
	Punches []ledger.EffectivePunch `json:"punches"`
	Summary Summary                 `json:"summary"`

	// Offline marks a view served from the snapshot cache.
	Offline   bool      `json:"offline,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
}

type HistoryView struct {
	Punches   []ledger.EffectivePunch `json:"punches"`
	Total     int64                   `json:"total"`
	Offline   bool                    `json:"offline,omitempty"`
	FetchedAt time.Time               `json:"fetchedAt"`
}

type HistoryOptions struct {
	Date  string
	Limit int
}

// Submit records a punch, queueing it locally on any transport failure.
// Server-side rejections (bad kind, out of sequence) are returned as-is
// and never queued: retrying them unchanged would fail identically.
func (e *PunchEndpoint) Submit(ctx context.Context, kind model.Kind, timestamp time.Time, note string) (*SubmitResult, error) {
	payload := PunchSubmission{
		Kind:      string(kind),
		Timestamp: timestamp.Format(wireTimeLayout),
		Note:      note,
	}

	resp, err := e.transport.Post(ctx, "/api/v1/punches", payload)
	if err != nil {
		if !IsTransient(err) {
			return nil, err
		}
		localID, qErr := e.queue.Enqueue(ActionPunch, payload)
		if qErr != nil {
			return nil, err
		}
		return &SubmitResult{Queued: true, LocalID: localID}, nil
	}

	var punch model.Punch
	if err := decodeData(resp, &punch); err != nil {
		return nil, err
	}
	return &SubmitResult{Punch: &punch}, nil
}

// Today fetches today's punches and the subject's adjustments in
// parallel, re-projects the effective timeline locally, and unions the
// still-queued punches so the employee's own pending actions are never
// invisible. When every endpoint is down it serves the snapshot cache.
func (e *PunchEndpoint) Today(ctx context.Context) (*TodayView, error) {
	var (
		wg          sync.WaitGroup
		view        TodayView
		adjustments []model.Adjustment
		todayErr    error
		adjErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		resp, err := e.transport.Get(ctx, "/api/v1/punches/today", nil)
		if err != nil {
			todayErr = err
			return
		}
		todayErr = decodeData(resp, &view)
	}()
	go func() {
		defer wg.Done()
		resp, err := e.transport.Get(ctx, "/api/v1/adjustments", nil)
		if err != nil {
			adjErr = err
			return
		}
		adjErr = decodeData(resp, &adjustments)
	}()
	wg.Wait()

	if todayErr != nil {
		// only network trouble warrants stale data; a server rejection
		// (expired token, bad request) must surface
		if !IsTransient(todayErr) {
			return nil, todayErr
		}
		cached, at, ok := e.cachedToday()
		if !ok {
			return nil, todayErr
		}
		cached.Offline = true
		cached.FetchedAt = at
		e.mergeQueued(cached)
		return cached, nil
	}
	if adjErr != nil {
		// punches arrived; a missing adjustment list only loses
		// annotations, not punches
		adjustments = nil
	}

	view.FetchedAt = time.Now()
	reproject(&view.Punches, adjustments)
	_ = e.cache.Put("today", view)
	e.mergeQueued(&view)
	return &view, nil
}

// History fetches past punches annotated with their correction state.
func (e *PunchEndpoint) History(ctx context.Context, opts HistoryOptions) (*HistoryView, error) {
	query := map[string]string{}
	if opts.Date != "" {
		query["date"] = opts.Date
	}
	if opts.Limit > 0 {
		query["limit"] = strconv.Itoa(opts.Limit)
	}

	var (
		wg          sync.WaitGroup
		punches     []ledger.EffectivePunch
		total       int64
		adjustments []model.Adjustment
		histErr     error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		resp, err := e.transport.Get(ctx, "/api/v1/punches/history", query)
		if err != nil {
			histErr = err
			return
		}
		var env struct {
			Data       []ledger.EffectivePunch `json:"data"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		}
		if err := json.Unmarshal(resp.Data, &env); err != nil {
			histErr = err
			return
		}
		punches = env.Data
		total = env.Pagination.Total
	}()
	go func() {
		defer wg.Done()
		resp, err := e.transport.Get(ctx, "/api/v1/adjustments", nil)
		if err != nil {
			return
		}
		_ = decodeData(resp, &adjustments)
	}()
	wg.Wait()

	if histErr != nil {
		if !IsTransient(histErr) {
			return nil, histErr
		}
		var cached HistoryView
		at, ok := e.cache.Get("history", &cached)
		if !ok {
			return nil, histErr
		}
		cached.Offline = true
		cached.FetchedAt = at
		return &cached, nil
	}

	reproject(&punches, adjustments)
	view := HistoryView{Punches: punches, Total: total, FetchedAt: time.Now()}
	_ = e.cache.Put("history", view)
	return &view, nil
}

func (e *PunchEndpoint) cachedToday() (*TodayView, time.Time, bool) {
	var cached TodayView
	at, ok := e.cache.Get("today", &cached)
	if !ok {
		return nil, time.Time{}, false
	}
	return &cached, at, true
}

// mergeQueued unions still-queued local punches for the view's day,
// flagged unsynced, and recomputes the summary over the merged timeline.
func (e *PunchEndpoint) mergeQueued(view *TodayView) {
	for _, action := range e.queue.Snapshot() {
		if action.Kind != ActionPunch {
			continue
		}
		var payload PunchSubmission
		if err := json.Unmarshal(action.Payload, &payload); err != nil {
			continue
		}
		ts, err := time.Parse(wireTimeLayout, payload.Timestamp)
		if err != nil || model.Day(ts) != view.Date {
			continue
		}
		view.Punches = append(view.Punches, ledger.EffectivePunch{
			ID:        action.LocalID,
			Kind:      model.Kind(payload.Kind),
			Date:      view.Date,
			Timestamp: ts,
			Note:      payload.Note,
			Unsynced:  true,
		})
	}

	raw := rawPunches(view.Punches)
	view.Summary = Summary{
		TotalPunches:  len(view.Punches),
		WorkedMinutes: ledger.DailyMinutes(view.Punches),
		CompleteDay:   ledger.Complete(view.Punches),
	}
	view.Summary.WorkedHours = ledger.FormatMinutes(view.Summary.WorkedMinutes)
	if next, ok := ledger.NextExpected(raw); ok {
		view.Summary.NextExpectedKind = string(next)
	}
}

// reproject re-applies the adjustment projection locally. The server
// already projects, but doing it again over the freshly fetched
// adjustments keeps cached views consistent with the latest approvals
// and is the same code path the server runs.
func reproject(punches *[]ledger.EffectivePunch, adjustments []model.Adjustment) {
	if len(adjustments) == 0 {
		return
	}
	raw := rawPunches(*punches)
	ids := make(map[string]bool, len(raw))
	for _, p := range raw {
		ids[p.ID] = true
	}
	relevant := utils.Filter(adjustments, func(a model.Adjustment) bool {
		return ids[a.PunchID]
	})
	*punches = ledger.ProjectEffective(raw, relevant)
}

// rawPunches undoes the projection so it can be re-applied: an adjusted
// punch's original timestamp is restored.
func rawPunches(punches []ledger.EffectivePunch) []model.Punch {
	return utils.Map(punches, func(p ledger.EffectivePunch) model.Punch {
		ts := p.Timestamp
		if p.Adjusted && p.OriginalTime != nil {
			ts = *p.OriginalTime
		}
		return model.Punch{
			ID:         p.ID,
			EmployeeID: p.EmployeeID,
			Kind:       p.Kind,
			Date:       p.Date,
			Timestamp:  ts,
			Note:       p.Note,
		}
	})
}
