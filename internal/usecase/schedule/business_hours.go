package schedule

import (
	"context"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

type BusinessDay struct {
	Weekday    int    `json:"weekday"`
	Active     bool   `json:"active"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	LunchStart string `json:"lunchStart"`
	LunchEnd   string `json:"lunchEnd"`
}

type GetBusinessHours struct {
	repo domain.Repository
}

func NewGetBusinessHours(repo domain.Repository) *GetBusinessHours {
	return &GetBusinessHours{repo: repo}
}

func (uc *GetBusinessHours) Execute(
	ctx context.Context,
	providerID uint,
) ([]models.BusinessHours, error) {

	hours, err := uc.repo.ListBusinessHours(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		hours = []models.BusinessHours{}
	}
	return hours, nil
}

// UpdateBusinessHours replaces the provider's default hours. Schedules
// already copied to employees are left as they are.
type UpdateBusinessHours struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBusinessHours(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBusinessHours {
	return &UpdateBusinessHours{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateBusinessHours) Execute(
	ctx context.Context,
	providerID uint,
	actorID *uint,
	days []BusinessDay,
) ([]models.BusinessHours, error) {

	seen := make(map[int]bool, len(days))
	hours := make([]models.BusinessHours, 0, len(days))

	for _, d := range days {
		if d.Weekday < 0 || d.Weekday > 6 || seen[d.Weekday] {
			return nil, httperr.ErrValidation("invalid_business_hours")
		}
		seen[d.Weekday] = true

		if d.Active {
			if err := validateDay(d); err != nil {
				return nil, err
			}
		}

		hours = append(hours, models.BusinessHours{
			ProviderID: providerID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	if err := uc.repo.ReplaceBusinessHours(ctx, providerID, hours); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		UserID:     actorID,
		Action:     "business_hours_updated",
		Entity:     "provider",
		EntityID:   &providerID,
	})

	return hours, nil
}

func validateDay(d BusinessDay) error {
	start, err := timezone.MinutesFromClock(d.StartTime)
	if err != nil {
		return httperr.ErrValidation("invalid_business_hours")
	}
	end, err := timezone.MinutesFromClock(d.EndTime)
	if err != nil || start >= end {
		return httperr.ErrValidation("invalid_business_hours")
	}

	if d.LunchStart == "" && d.LunchEnd == "" {
		return nil
	}
	ls, err := timezone.MinutesFromClock(d.LunchStart)
	if err != nil {
		return httperr.ErrValidation("invalid_business_hours")
	}
	le, err := timezone.MinutesFromClock(d.LunchEnd)
	if err != nil || !(start < ls && ls < le && le < end) {
		return httperr.ErrValidation("invalid_business_hours")
	}
	return nil
}
