package v1

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ActionKind string

const (
	ActionPunch      ActionKind = "punch"
	ActionAdjustment ActionKind = "adjustment"
)

// QueuedAction is a submission the user made while the server was
// unreachable. LocalID identifies it until the server confirms delivery,
// so a retried sync pass can never enqueue or deliver it twice.
type QueuedAction struct {
	LocalID  string          `json:"localId"`
	Kind     ActionKind      `json:"kind"`
	Payload  json.RawMessage `json:"payload"`
	QueuedAt time.Time       `json:"queuedAt"`
}

// Queue is the durable local store of not-yet-confirmed actions. Every
// mutation is flushed to disk before returning.
type Queue struct {
	mu      sync.Mutex
	path    string
	actions []QueuedAction
}

func OpenQueue(dir string) (*Queue, error) {
	q := &Queue{path: filepath.Join(dir, "pending_actions.json")}

	raw, err := os.ReadFile(q.path)
	if os.IsNotExist(err) {
		return q, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}
	if err := json.Unmarshal(raw, &q.actions); err != nil {
		return nil, fmt.Errorf("failed to parse queue: %w", err)
	}
	return q, nil
}

// Enqueue stores an action and returns its local id.
func (q *Queue) Enqueue(kind ActionKind, payload any) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	action := QueuedAction{
		LocalID:  uuid.NewString(),
		Kind:     kind,
		Payload:  raw,
		QueuedAt: time.Now(),
	}
	q.actions = append(q.actions, action)

	if err := q.flush(); err != nil {
		q.actions = q.actions[:len(q.actions)-1]
		return "", err
	}
	return action.LocalID, nil
}

// Remove drops a confirmed or permanently rejected action.
func (q *Queue) Remove(localID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.actions[:0]
	for _, a := range q.actions {
		if a.LocalID != localID {
			kept = append(kept, a)
		}
	}
	q.actions = kept
	return q.flush()
}

// Snapshot returns a copy of the pending actions in queue order.
func (q *Queue) Snapshot() []QueuedAction {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]QueuedAction, len(q.actions))
	copy(out, q.actions)
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.actions)
}

// flush writes through a temp file and renames, so a crash mid-write
// cannot truncate the queue. Callers hold the lock.
func (q *Queue) flush() error {
	raw, err := json.MarshalIndent(q.actions, "", "  ")
	if err != nil {
		return err
	}
	tmp := q.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, q.path)
}
