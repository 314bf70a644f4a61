package ledger

import (
	"errors"
	"fmt"

	"pontual.app/pontual/model"
)

// ErrUnknownKind rejects a punch kind outside the fixed sequence.
var ErrUnknownKind = errors.New("unknown punch kind")

// SequenceError reports why a punch is not admissible today. Expected
// carries the kind the caller should submit instead, so clients can
// self-correct.
type SequenceError struct {
	Kind      model.Kind
	Expected  model.Kind
	Duplicate bool
}

func (e *SequenceError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("%s already recorded today", e.Kind)
	}
	return fmt.Sprintf("out of sequence: expected %s, got %s", e.Expected, e.Kind)
}

// NextExpected returns the next admissible kind given today's punches.
// The second return is false once the day is complete.
func NextExpected(existing []model.Punch) (model.Kind, bool) {
	recorded := make(map[model.Kind]bool, len(existing))
	for _, p := range existing {
		recorded[p.Kind] = true
	}
	for _, k := range model.Sequence {
		if !recorded[k] {
			return k, true
		}
	}
	return "", false
}

// ValidateNext checks whether kind may be recorded given the punches
// already present for the subject's day. Checks run in a fixed order and
// the first failure wins: unknown kind, duplicate kind, out of sequence.
func ValidateNext(existing []model.Punch, kind model.Kind) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	for _, p := range existing {
		if p.Kind == kind {
			return &SequenceError{Kind: kind, Duplicate: true}
		}
	}
	expected, ok := NextExpected(existing)
	if !ok || kind != expected {
		return &SequenceError{Kind: kind, Expected: expected}
	}
	return nil
}
