package model

import "time"

// Employee is owned by the identity service. This service only reads it
// for display enrichment.
type Employee struct {
	ID           string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	FirstName    string `gorm:"column:first_name;type:varchar(100);not null" json:"firstName"`
	Surname      string `gorm:"column:surname;type:varchar(100)" json:"surname"`
	Organization string `gorm:"column:organization;type:varchar(200)" json:"organization"`
	Active       bool   `gorm:"column:active;not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employees"
}
