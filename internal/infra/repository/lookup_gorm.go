package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// Lookups shared by the appointment and schedule repositories. Every
// query is scoped to the provider that owns the row.

func findService(
	ctx context.Context,
	db *gorm.DB,
	providerID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", serviceID, providerID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func findEmployee(
	ctx context.Context,
	db *gorm.DB,
	providerID uint,
	employeeID uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", employeeID, providerID).
		First(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func listSchedules(
	ctx context.Context,
	db *gorm.DB,
	f schedule.Filter,
) ([]models.Schedule, error) {

	q := db.WithContext(ctx).Model(&models.Schedule{})

	if f.ProviderID != 0 {
		q = q.Where(
			"employee_id IN (?)",
			db.Model(&models.Employee{}).Select("id").Where("provider_id = ?", f.ProviderID),
		)
	}
	if f.EmployeeID != nil {
		q = q.Where("employee_id = ?", *f.EmployeeID)
	}
	if f.ServiceID != nil {
		q = q.Where("service_id = ?", *f.ServiceID)
	}
	if f.DayOfWeek != nil {
		q = q.Where("day_of_week = ?", *f.DayOfWeek)
	}

	var out []models.Schedule
	if err := q.
		Order("employee_id ASC").
		Order("service_id ASC").
		Order("day_of_week ASC").
		Order("period ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
