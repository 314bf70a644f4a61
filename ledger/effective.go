package ledger

import (
	"log"
	"time"

	"pontual.app/pontual/model"
	"pontual.app/pontual/utils"
)

// EffectivePunch is a punch as consumers should see it: an approved
// adjustment substitutes the timestamp while the original is retained for
// display. Pending and rejected adjustments only annotate the punch.
type EffectivePunch struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Kind       model.Kind `json:"kind"`
	Date       string     `json:"date"`
	Timestamp  time.Time  `json:"timestamp"`
	Note       string     `json:"note,omitempty"`

	Adjusted         bool                   `json:"adjusted"`
	OriginalTime     *time.Time             `json:"originalTime,omitempty"`
	CorrectionStatus model.AdjustmentStatus `json:"correctionStatus,omitempty"`
	ReviewerResponse string                 `json:"reviewerResponse,omitempty"`

	// Unsynced marks a punch that exists only in the local client queue.
	Unsynced bool `json:"unsynced,omitempty"`
}

// ProjectEffective maps raw punches to the effective timeline. An approved
// adjustment whose PunchID matches replaces the timestamp; a pending or
// rejected one is surfaced as a status annotation only. Adjustments that
// reference no punch in the input are tolerated: references are advisory
// and resolved lazily here.
func ProjectEffective(punches []model.Punch, adjustments []model.Adjustment) []EffectivePunch {
	byPunch := make(map[string]model.Adjustment, len(adjustments))
	for _, a := range adjustments {
		prev, ok := byPunch[a.PunchID]
		// approved wins the projection; a live pending request outranks a
		// closed rejection it superseded; the newest entry breaks ties
		if !ok || annotationRank(a.Status) >= annotationRank(prev.Status) {
			byPunch[a.PunchID] = a
		}
	}

	out := utils.Map(punches, func(p model.Punch) EffectivePunch {
		ep := EffectivePunch{
			ID:         p.ID,
			EmployeeID: p.EmployeeID,
			Kind:       p.Kind,
			Date:       p.Date,
			Timestamp:  p.Timestamp,
			Note:       p.Note,
		}
		a, ok := byPunch[p.ID]
		if !ok {
			return ep
		}
		delete(byPunch, p.ID)
		ep.CorrectionStatus = a.Status
		ep.ReviewerResponse = a.ReviewerResponse
		if a.Status == model.StatusApproved {
			orig := p.Timestamp
			ep.Timestamp = a.ProposedTime
			ep.OriginalTime = &orig
			ep.Adjusted = true
		}
		return ep
	})

	for id, a := range byPunch {
		log.Printf("adjustment %s references unknown punch %s, skipping", a.ID, id)
	}
	return out
}

func annotationRank(s model.AdjustmentStatus) int {
	switch s {
	case model.StatusApproved:
		return 2
	case model.StatusPending:
		return 1
	default:
		return 0
	}
}
