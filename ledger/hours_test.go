package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pontual.app/pontual/model"
)

func effectiveAt(kind model.Kind, hhmm string) EffectivePunch {
	t, _ := time.Parse("2006-01-02 15:04", "2025-03-10 "+hhmm)
	return EffectivePunch{
		ID:        string(kind),
		Kind:      kind,
		Date:      "2025-03-10",
		Timestamp: t,
	}
}

func TestDailyMinutes(t *testing.T) {
	tests := []struct {
		name    string
		punches []EffectivePunch
		want    int
	}{
		{
			name: "full standard day",
			punches: []EffectivePunch{
				effectiveAt(model.KindClockIn, "08:00"),
				effectiveAt(model.KindLunchOut, "12:00"),
				effectiveAt(model.KindLunchIn, "13:00"),
				effectiveAt(model.KindClockOut, "17:00"),
			},
			want: 480,
		},
		{
			name:    "no punches",
			punches: nil,
			want:    0,
		},
		{
			name: "clock in only, open interval not counted",
			punches: []EffectivePunch{
				effectiveAt(model.KindClockIn, "08:00"),
			},
			want: 0,
		},
		{
			name: "morning closed, afternoon open",
			punches: []EffectivePunch{
				effectiveAt(model.KindClockIn, "08:00"),
				effectiveAt(model.KindLunchOut, "12:30"),
				effectiveAt(model.KindLunchIn, "13:30"),
			},
			want: 270,
		},
		{
			name: "no clock in means zero even with other punches",
			punches: []EffectivePunch{
				effectiveAt(model.KindLunchIn, "13:00"),
				effectiveAt(model.KindClockOut, "17:00"),
			},
			want: 0,
		},
		{
			name: "sub-minute remainder floors",
			punches: []EffectivePunch{
				{Kind: model.KindClockIn, Timestamp: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)},
				{Kind: model.KindLunchOut, Timestamp: time.Date(2025, 3, 10, 8, 30, 59, 0, time.UTC)},
			},
			want: 30,
		},
		{
			name: "negative interval clamps to zero",
			punches: []EffectivePunch{
				effectiveAt(model.KindClockIn, "12:00"),
				effectiveAt(model.KindLunchOut, "08:00"),
				effectiveAt(model.KindLunchIn, "13:00"),
				effectiveAt(model.KindClockOut, "17:00"),
			},
			want: 240,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyMinutes(tt.punches))
		})
	}
}

func TestComplete(t *testing.T) {
	full := []EffectivePunch{
		effectiveAt(model.KindClockIn, "08:00"),
		effectiveAt(model.KindLunchOut, "12:00"),
		effectiveAt(model.KindLunchIn, "13:00"),
		effectiveAt(model.KindClockOut, "17:00"),
	}
	assert.True(t, Complete(full))
	assert.False(t, Complete(full[:3]))
	assert.False(t, Complete(nil))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "08:00", FormatMinutes(480))
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "04:30", FormatMinutes(270))
	assert.Equal(t, "41:15", FormatMinutes(2475))
}
