package models

import "time"

// BusinessHours are the provider's default opening hours. They are copied
// into Schedule rows when a service is assigned to an employee.
type BusinessHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"providerId"`

	Weekday int `json:"weekday"`

	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	LunchStart string `json:"lunchStart"`
	LunchEnd   string `json:"lunchEnd"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
