package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/dto"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

type ListAppointmentsInput struct {
	ProviderID uint
	Role       string
	// CallerEmployeeID is the employee linked to a staff login.
	CallerEmployeeID *uint

	EmployeeID *uint
	ServiceID  *uint
	// Date, when set, keeps one provider-local day ("YYYY-MM-DD").
	Date string
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists the provider's appointments. Owners see all of them;
// staff only those of their own employee, whatever filter they send.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("provider_not_found")
		}
		return nil, err
	}
	loc := timezone.Location(provider.Timezone)

	f := domain.Filter{
		ProviderID: provider.ID,
		EmployeeID: in.EmployeeID,
		ServiceID:  in.ServiceID,
	}

	if in.Role != models.RoleOwner {
		if in.CallerEmployeeID == nil {
			return []dto.AppointmentListDTO{}, nil
		}
		f.EmployeeID = in.CallerEmployeeID
	}

	if in.Date != "" {
		day, err := timezone.ParseDate(in.Date, loc)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date")
		}
		from, to := timezone.DayBounds(day, loc)
		f.From, f.To = &from, &to
	}

	appointments, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			Date:         ap.Date.UTC(),
			LocalTime:    timezone.WallClock(ap.Date, loc),
			Status:       ap.Status,
			EmployeeID:   ap.EmployeeID,
			EmployeeName: ap.Employee.Name,
			ServiceID:    ap.ServiceID,
			ServiceName:  ap.Service.Name,
			ClientID:     ap.ClientID,
			ClientName:   ap.Client.Name,
			ClientPhone:  ap.Client.Phone,
			ClientEmail:  ap.Client.Email,
			Notes:        ap.Notes,
		})
	}

	return out, nil
}
