package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

// scope is what every public availability query resolves first: the
// provider behind the slug, its location, a bookable service and an
// optional pinned employee.
type scope struct {
	provider   *models.Provider
	loc        *time.Location
	service    *models.Service
	employeeID *uint
}

func loadScope(
	ctx context.Context,
	repo domain.Repository,
	slug string,
	serviceID uint,
	employeeID *uint,
) (*scope, error) {

	provider, err := repo.GetProviderBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("provider_not_found")
		}
		return nil, err
	}

	service, err := repo.GetService(ctx, provider.ID, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}
	if !service.Bookable() {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	if service.DurationMin <= 0 {
		return nil, httperr.ErrValidation("invalid_duration")
	}

	if employeeID != nil {
		if _, err := repo.GetEmployee(ctx, provider.ID, *employeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, httperr.ErrNotFound("employee_not_found")
			}
			return nil, err
		}
		assigned, err := repo.IsEmployeeAssigned(ctx, *employeeID, service.ID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, httperr.ErrNotFound("employee_not_assigned")
		}
	}

	return &scope{
		provider:   provider,
		loc:        timezone.Location(provider.Timezone),
		service:    service,
		employeeID: employeeID,
	}, nil
}

// schedules loads the periods of the scoped service (and employee). A nil
// weekday loads the whole week.
func (s *scope) schedules(
	ctx context.Context,
	repo domain.Repository,
	weekday *int,
) ([]models.Schedule, error) {
	return repo.ListSchedules(ctx, schedule.Filter{
		ProviderID: s.provider.ID,
		EmployeeID: s.employeeID,
		ServiceID:  &s.service.ID,
		DayOfWeek:  weekday,
	})
}

// appointments loads the active appointments of the scoped employee (all
// employees when none is pinned) starting in [from, to).
func (s *scope) appointments(
	ctx context.Context,
	repo domain.Repository,
	from time.Time,
	to time.Time,
	serviceOnly bool,
) ([]models.Appointment, error) {

	f := domain.Filter{
		ProviderID: s.provider.ID,
		EmployeeID: s.employeeID,
		From:       &from,
		To:         &to,
		ActiveOnly: true,
	}
	if serviceOnly {
		f.ServiceID = &s.service.ID
	}
	return repo.ListAppointments(ctx, f)
}
