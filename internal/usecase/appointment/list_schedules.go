package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type ListSchedules struct {
	repo domain.Repository
}

func NewListSchedules(repo domain.Repository) *ListSchedules {
	return &ListSchedules{repo: repo}
}

func (uc *ListSchedules) Execute(
	ctx context.Context,
	f schedule.Filter,
) ([]models.Schedule, error) {

	if f.ProviderID == 0 {
		return nil, httperr.ErrValidation("invalid_request")
	}
	if f.DayOfWeek != nil && (*f.DayOfWeek < 0 || *f.DayOfWeek > 6) {
		return nil, httperr.ErrValidation("invalid_request")
	}

	out, err := uc.repo.ListSchedules(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Schedule{}
	}
	return out, nil
}
