package model

import "time"

// Kind is the clock event type. A workday is made of at most one punch of
// each kind, recorded in the fixed order below.
type Kind string

const (
	KindClockIn  Kind = "clock_in"
	KindLunchOut Kind = "lunch_out"
	KindLunchIn  Kind = "lunch_in"
	KindClockOut Kind = "clock_out"
)

// Sequence is the only admissible daily punch order.
var Sequence = []Kind{KindClockIn, KindLunchOut, KindLunchIn, KindClockOut}

func (k Kind) Valid() bool {
	for _, s := range Sequence {
		if k == s {
			return true
		}
	}
	return false
}

type Punch struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	EmployeeID string    `gorm:"column:employee_id;type:varchar(36);not null;uniqueIndex:uniq_employee_kind_date" json:"employeeId"`
	Kind       Kind      `gorm:"column:kind;type:varchar(20);not null;uniqueIndex:uniq_employee_kind_date" json:"kind"`
	Date       string    `gorm:"column:date;type:date;not null;uniqueIndex:uniq_employee_kind_date" json:"date"`
	Timestamp  time.Time `gorm:"column:timestamp;type:datetime;not null" json:"timestamp"`
	Note       string    `gorm:"column:note;type:varchar(500)" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
}

func (Punch) TableName() string {
	return "punches"
}

// Day returns the calendar day key for a wall-clock timestamp.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}
