package models

import "time"

type Employee struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ProviderID uint   `gorm:"index;not null" json:"providerId"`
	Name       string `gorm:"size:100;not null" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EmployeeService links an employee to a service it performs.
type EmployeeService struct {
	EmployeeID uint      `gorm:"primaryKey" json:"employeeId"`
	ServiceID  uint      `gorm:"primaryKey;index" json:"serviceId"`
	CreatedAt  time.Time `json:"createdAt"`
}
