package model

import "time"

type AdjustmentStatus string

const (
	StatusPending  AdjustmentStatus = "pending"
	StatusApproved AdjustmentStatus = "approved"
	StatusRejected AdjustmentStatus = "rejected"
)

// Adjustment is a proposed retroactive change to one punch's effective
// timestamp. PunchID is a bare reference: it is not validated at submit
// time and is resolved lazily when the effective timeline is projected.
type Adjustment struct {
	ID               string           `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	EmployeeID       string           `gorm:"column:employee_id;type:varchar(36);not null;index:idx_adjustments_employee" json:"employeeId"`
	PunchID          string           `gorm:"column:punch_id;type:varchar(36);not null;index:idx_adjustments_punch" json:"punchId"`
	ProposedTime     time.Time        `gorm:"column:proposed_time;type:datetime;not null" json:"proposedTime"`
	Reason           string           `gorm:"column:reason;type:varchar(500);not null" json:"reason"`
	Status           AdjustmentStatus `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	ReviewerResponse string           `gorm:"column:reviewer_response;type:varchar(300)" json:"reviewerResponse,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Adjustment) TableName() string {
	return "adjustments"
}

func (s AdjustmentStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}
