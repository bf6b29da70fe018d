package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

type AvailabilityInput struct {
	ProviderSlug string
	ServiceID    uint
	EmployeeID   *uint
	// Date is "YYYY-MM-DD" in the provider timezone.
	Date string
}

type AvailabilityResult struct {
	Date       string              `json:"date"`
	ServiceID  uint                `json:"serviceId"`
	EmployeeID *uint               `json:"employeeId,omitempty"`
	Slots      []availability.Slot `json:"slots"`
}

// GetAvailability lists the slots of one day: individual entries when an
// employee is pinned, unified entries across employees otherwise.
type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*AvailabilityResult, error) {

	sc, err := loadScope(ctx, uc.repo, in.ProviderSlug, in.ServiceID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(in.Date, sc.loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}

	weekday := int(day.Weekday())
	schedules, err := sc.schedules(ctx, uc.repo, &weekday)
	if err != nil {
		return nil, err
	}

	cands := slot.Generate(schedules, sc.service.DurationMin, day)

	from, to := timezone.DayBounds(day, sc.loc)
	appointments, err := sc.appointments(ctx, uc.repo, from, to, false)
	if err != nil {
		return nil, err
	}

	slots := availability.Resolve(cands, availability.NewOccupancy(appointments, sc.loc), in.EmployeeID != nil)
	if slots == nil {
		slots = []availability.Slot{}
	}

	return &AvailabilityResult{
		Date:       day.Format(timezone.DateLayout),
		ServiceID:  sc.service.ID,
		EmployeeID: in.EmployeeID,
		Slots:      slots,
	}, nil
}
