package schedule

import (
	"context"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// Filter narrows ListSchedules. Nil fields do not filter. ProviderID, when
// non-zero, restricts results to employees of that provider.
type Filter struct {
	ProviderID uint
	EmployeeID *uint
	ServiceID  *uint
	DayOfWeek  *int
}

// Store is the read side used by the engine. Rows come ordered by
// employee, service, weekday and period.
type Store interface {
	ListSchedules(ctx context.Context, f Filter) ([]models.Schedule, error)
}

// Repository is the write side used when services are assigned to
// employees and when business hours change.
type Repository interface {
	Store

	GetEmployee(ctx context.Context, providerID uint, employeeID uint) (*models.Employee, error)
	GetService(ctx context.Context, providerID uint, serviceID uint) (*models.Service, error)

	ListBusinessHours(ctx context.Context, providerID uint) ([]models.BusinessHours, error)
	ReplaceBusinessHours(ctx context.Context, providerID uint, hours []models.BusinessHours) error

	AssignService(ctx context.Context, link models.EmployeeService, schedules []models.Schedule) error
	UnassignService(ctx context.Context, employeeID uint, serviceID uint) error
}
