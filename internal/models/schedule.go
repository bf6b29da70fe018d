package models

import "time"

// Schedule is one contiguous working period of an employee for a service
// on a weekday (0 = Sunday). Split shifts use several periods.
type Schedule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EmployeeID uint `gorm:"uniqueIndex:uq_schedule_key;not null" json:"employeeId"`
	ServiceID  uint `gorm:"uniqueIndex:uq_schedule_key;index;not null" json:"serviceId"`
	DayOfWeek  int  `gorm:"uniqueIndex:uq_schedule_key;not null" json:"dayOfWeek"`
	Period     int  `gorm:"uniqueIndex:uq_schedule_key;not null;default:1" json:"period"`

	StartTime string `gorm:"size:5;not null" json:"startTime"`
	EndTime   string `gorm:"size:5;not null" json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
