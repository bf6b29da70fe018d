package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

// Day and month counters for calendar badges. totalSlots counts one slot
// per employee and start time; reservedSlots counts the active
// appointments of the same service (and employee, when pinned).

type DaySummaryInput struct {
	ProviderSlug string
	ServiceID    uint
	EmployeeID   *uint
	Date         string
}

type GetDaySummary struct {
	repo domain.Repository
}

func NewGetDaySummary(repo domain.Repository) *GetDaySummary {
	return &GetDaySummary{repo: repo}
}

func (uc *GetDaySummary) Execute(
	ctx context.Context,
	in DaySummaryInput,
) (*availability.Summary, error) {

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

	from, to := timezone.DayBounds(day, sc.loc)
	appointments, err := sc.appointments(ctx, uc.repo, from, to, true)
	if err != nil {
		return nil, err
	}

	s := summarizeDay(schedules, sc.service.DurationMin, day, appointments)
	return &s, nil
}

// ======================================================
// MONTH
// ======================================================

type MonthSummaryInput struct {
	ProviderSlug string
	ServiceID    uint
	EmployeeID   *uint
	Year         int
	Month        int
}

type GetMonthSummary struct {
	repo domain.Repository
}

func NewGetMonthSummary(repo domain.Repository) *GetMonthSummary {
	return &GetMonthSummary{repo: repo}
}

// Execute returns one summary per calendar day of the month, in order.
func (uc *GetMonthSummary) Execute(
	ctx context.Context,
	in MonthSummaryInput,
) ([]availability.Summary, error) {

	if in.Month < 1 || in.Month > 12 || in.Year < 1970 || in.Year > 9999 {
		return nil, httperr.ErrValidation("invalid_date")
	}

	sc, err := loadScope(ctx, uc.repo, in.ProviderSlug, in.ServiceID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	schedules, err := sc.schedules(ctx, uc.repo, nil)
	if err != nil {
		return nil, err
	}

	first := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, sc.loc)
	next := first.AddDate(0, 1, 0)

	appointments, err := sc.appointments(ctx, uc.repo, timezone.Instant(first), timezone.Instant(next), true)
	if err != nil {
		return nil, err
	}

	var out []availability.Summary
	for day := first; day.Before(next); day = day.AddDate(0, 0, 1) {
		from, to := timezone.DayBounds(day, sc.loc)

		var onDay []models.Appointment
		for _, ap := range appointments {
			if !ap.Date.Before(from) && ap.Date.Before(to) {
				onDay = append(onDay, ap)
			}
		}

		out = append(out, summarizeDay(schedules, sc.service.DurationMin, day, onDay))
	}

	return out, nil
}

func summarizeDay(
	schedules []models.Schedule,
	durationMin int,
	day time.Time,
	appointments []models.Appointment,
) availability.Summary {

	total := len(slot.Generate(schedules, durationMin, day))
	s := availability.Summarize(total, appointments)
	s.Date = day.Format(timezone.DateLayout)
	return s
}
