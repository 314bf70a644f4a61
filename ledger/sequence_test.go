package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pontual.app/pontual/model"
)

func punchesOf(kinds ...model.Kind) []model.Punch {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	out := make([]model.Punch, 0, len(kinds))
	for i, k := range kinds {
		out = append(out, model.Punch{
			ID:         string(k),
			EmployeeID: "emp-1",
			Kind:       k,
			Date:       "2025-03-10",
			Timestamp:  base.Add(time.Duration(i) * 4 * time.Hour),
		})
	}
	return out
}

func TestValidateNext(t *testing.T) {
	tests := []struct {
		name     string
		existing []model.Punch
		kind     model.Kind
		wantErr  error
	}{
		{
			name:     "empty day accepts clock in",
			existing: nil,
			kind:     model.KindClockIn,
			wantErr:  nil,
		},
		{
			name:     "empty day rejects lunch out",
			existing: nil,
			kind:     model.KindLunchOut,
			wantErr:  &SequenceError{Kind: model.KindLunchOut, Expected: model.KindClockIn},
		},
		{
			name:     "empty day rejects clock out",
			existing: nil,
			kind:     model.KindClockOut,
			wantErr:  &SequenceError{Kind: model.KindClockOut, Expected: model.KindClockIn},
		},
		{
			name:     "after clock in only lunch out",
			existing: punchesOf(model.KindClockIn),
			kind:     model.KindLunchOut,
			wantErr:  nil,
		},
		{
			name:     "after clock in rejects lunch in",
			existing: punchesOf(model.KindClockIn),
			kind:     model.KindLunchIn,
			wantErr:  &SequenceError{Kind: model.KindLunchIn, Expected: model.KindLunchOut},
		},
		{
			name:     "duplicate clock in",
			existing: punchesOf(model.KindClockIn),
			kind:     model.KindClockIn,
			wantErr:  &SequenceError{Kind: model.KindClockIn, Duplicate: true},
		},
		{
			name:     "full sequence accepts clock out last",
			existing: punchesOf(model.KindClockIn, model.KindLunchOut, model.KindLunchIn),
			kind:     model.KindClockOut,
			wantErr:  nil,
		},
		{
			name:     "complete day rejects everything",
			existing: punchesOf(model.Sequence...),
			kind:     model.KindClockOut,
			wantErr:  &SequenceError{Kind: model.KindClockOut, Duplicate: true},
		},
		{
			name:     "unknown kind",
			existing: nil,
			kind:     model.Kind("coffee_break"),
			wantErr:  ErrUnknownKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNext(tt.existing, tt.kind)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func TestNextExpected(t *testing.T) {
	tests := []struct {
		name     string
		existing []model.Punch
		want     model.Kind
		ok       bool
	}{
		{"empty", nil, model.KindClockIn, true},
		{"after clock in", punchesOf(model.KindClockIn), model.KindLunchOut, true},
		{"after lunch", punchesOf(model.KindClockIn, model.KindLunchOut, model.KindLunchIn), model.KindClockOut, true},
		{"complete", punchesOf(model.Sequence...), model.Kind(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextExpected(tt.existing)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
