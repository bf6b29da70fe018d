package models

import "time"

// RoundRobinCursor is the rotation pointer of a service. LastIndex only
// ever grows; the candidate index is taken modulo the employee count.
type RoundRobinCursor struct {
	ServiceID uint      `gorm:"primaryKey;autoIncrement:false" json:"serviceId"`
	LastIndex int       `gorm:"not null;default:0" json:"lastIndex"`
	UpdatedAt time.Time `json:"updatedAt"`
}
