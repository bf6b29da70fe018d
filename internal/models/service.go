package models

import "time"

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"providerId"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"durationMinutes"`
	Price       float64 `json:"price"`
	IsActive    bool    `gorm:"default:true" json:"isActive"`
	Deleted     bool    `gorm:"default:false" json:"deleted"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Bookable reports whether the service may appear in slot generation.
func (s *Service) Bookable() bool {
	return s.IsActive && !s.Deleted
}
