package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pontual.app/pontual/model"
)

func TestProjectEffective(t *testing.T) {
	original := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	proposed := time.Date(2025, 3, 10, 7, 45, 0, 0, time.UTC)

	punch := model.Punch{
		ID:         "p-1",
		EmployeeID: "emp-1",
		Kind:       model.KindClockIn,
		Date:       "2025-03-10",
		Timestamp:  original,
	}

	t.Run("approved adjustment replaces timestamp and keeps original", func(t *testing.T) {
		adj := model.Adjustment{
			ID:           "a-1",
			PunchID:      "p-1",
			ProposedTime: proposed,
			Status:       model.StatusApproved,
		}

		out := ProjectEffective([]model.Punch{punch}, []model.Adjustment{adj})
		require.Len(t, out, 1)
		assert.True(t, out[0].Adjusted)
		assert.Equal(t, proposed, out[0].Timestamp)
		require.NotNil(t, out[0].OriginalTime)
		assert.Equal(t, original, *out[0].OriginalTime)
		assert.Equal(t, model.StatusApproved, out[0].CorrectionStatus)
	})

	t.Run("pending adjustment annotates without changing timestamp", func(t *testing.T) {
		adj := model.Adjustment{ID: "a-1", PunchID: "p-1", ProposedTime: proposed, Status: model.StatusPending}

		out := ProjectEffective([]model.Punch{punch}, []model.Adjustment{adj})
		require.Len(t, out, 1)
		assert.False(t, out[0].Adjusted)
		assert.Equal(t, original, out[0].Timestamp)
		assert.Nil(t, out[0].OriginalTime)
		assert.Equal(t, model.StatusPending, out[0].CorrectionStatus)
	})

	t.Run("rejected adjustment carries reviewer response", func(t *testing.T) {
		adj := model.Adjustment{
			ID:               "a-1",
			PunchID:          "p-1",
			ProposedTime:     proposed,
			Status:           model.StatusRejected,
			ReviewerResponse: "no evidence of early arrival",
		}

		out := ProjectEffective([]model.Punch{punch}, []model.Adjustment{adj})
		require.Len(t, out, 1)
		assert.False(t, out[0].Adjusted)
		assert.Equal(t, original, out[0].Timestamp)
		assert.Equal(t, model.StatusRejected, out[0].CorrectionStatus)
		assert.Equal(t, "no evidence of early arrival", out[0].ReviewerResponse)
	})

	t.Run("approved wins over older rejected for the same punch", func(t *testing.T) {
		adjs := []model.Adjustment{
			{ID: "a-1", PunchID: "p-1", ProposedTime: proposed, Status: model.StatusRejected},
			{ID: "a-2", PunchID: "p-1", ProposedTime: proposed, Status: model.StatusApproved},
		}

		out := ProjectEffective([]model.Punch{punch}, adjs)
		require.Len(t, out, 1)
		assert.True(t, out[0].Adjusted)
		assert.Equal(t, proposed, out[0].Timestamp)
	})

	t.Run("pending resubmission outranks an older rejection", func(t *testing.T) {
		adjs := []model.Adjustment{
			{ID: "a-1", PunchID: "p-1", ProposedTime: proposed, Status: model.StatusRejected, ReviewerResponse: "no evidence"},
			{ID: "a-2", PunchID: "p-1", ProposedTime: proposed, Status: model.StatusPending},
		}

		out := ProjectEffective([]model.Punch{punch}, adjs)
		require.Len(t, out, 1)
		assert.False(t, out[0].Adjusted)
		assert.Equal(t, original, out[0].Timestamp)
		assert.Equal(t, model.StatusPending, out[0].CorrectionStatus)
		assert.Empty(t, out[0].ReviewerResponse)
	})

	t.Run("newest rejection wins among rejections", func(t *testing.T) {
		adjs := []model.Adjustment{
			{ID: "a-1", PunchID: "p-1", ProposedTime: proposed, Status: model.StatusRejected, ReviewerResponse: "first answer"},
			{ID: "a-2", PunchID: "p-1", ProposedTime: proposed, Status: model.StatusRejected, ReviewerResponse: "second answer"},
		}

		out := ProjectEffective([]model.Punch{punch}, adjs)
		require.Len(t, out, 1)
		assert.Equal(t, model.StatusRejected, out[0].CorrectionStatus)
		assert.Equal(t, "second answer", out[0].ReviewerResponse)
	})

	t.Run("dangling reference leaves punches untouched", func(t *testing.T) {
		adj := model.Adjustment{ID: "a-9", PunchID: "no-such-punch", ProposedTime: proposed, Status: model.StatusApproved}

		out := ProjectEffective([]model.Punch{punch}, []model.Adjustment{adj})
		require.Len(t, out, 1)
		assert.False(t, out[0].Adjusted)
		assert.Empty(t, out[0].CorrectionStatus)
	})

	t.Run("no adjustments", func(t *testing.T) {
		out := ProjectEffective([]model.Punch{punch}, nil)
		require.Len(t, out, 1)
		assert.False(t, out[0].Adjusted)
		assert.Equal(t, original, out[0].Timestamp)
	})
}

func TestPeriodReport(t *testing.T) {
	day1 := []model.Punch{
		{ID: "d1-in", Kind: model.KindClockIn, Date: "2025-03-10", Timestamp: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)},
		{ID: "d1-lo", Kind: model.KindLunchOut, Date: "2025-03-10", Timestamp: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)},
		{ID: "d1-li", Kind: model.KindLunchIn, Date: "2025-03-10", Timestamp: time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)},
		{ID: "d1-out", Kind: model.KindClockOut, Date: "2025-03-10", Timestamp: time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)},
	}
	day2 := []model.Punch{
		{ID: "d2-in", Kind: model.KindClockIn, Date: "2025-03-11", Timestamp: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)},
		{ID: "d2-lo", Kind: model.KindLunchOut, Date: "2025-03-11", Timestamp: time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC)},
	}

	report := PeriodReport(append(day1, day2...), nil)

	require.Len(t, report.Days, 2)
	assert.Equal(t, "2025-03-10", report.Days[0].Date)
	assert.Equal(t, 480, report.Days[0].Minutes)
	assert.True(t, report.Days[0].Complete)
	assert.Equal(t, "2025-03-11", report.Days[1].Date)
	assert.Equal(t, 180, report.Days[1].Minutes)
	assert.False(t, report.Days[1].Complete)
	assert.Equal(t, 2, report.DaysWorked)
	assert.Equal(t, 660, report.TotalMinutes)
	assert.Equal(t, "11:00", report.TotalHours)

	t.Run("approved adjustment shifts the day's minutes", func(t *testing.T) {
		adj := model.Adjustment{
			ID:           "a-1",
			PunchID:      "d1-in",
			ProposedTime: time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC),
			Status:       model.StatusApproved,
		}
		adjusted := PeriodReport(day1, []model.Adjustment{adj})
		require.Len(t, adjusted.Days, 1)
		assert.Equal(t, 510, adjusted.Days[0].Minutes)
	})
}
