package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

type AssignmentInput struct {
	ProviderID uint
	EmployeeID uint
	ServiceID  uint
	ActorID    *uint
}

// ======================================================
// ASSIGN
// ======================================================

// AssignService links a service to an employee and copies the provider's
// current business hours into the employee's schedules for it. Later
// changes to business hours do not touch schedules already copied.
type AssignService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAssignService(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AssignService {
	return &AssignService{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AssignService) Execute(
	ctx context.Context,
	in AssignmentInput,
) ([]models.Schedule, error) {

	if err := checkPair(ctx, uc.repo, in); err != nil {
		return nil, err
	}

	hours, err := uc.repo.ListBusinessHours(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	schedules := domain.FromBusinessHours(hours, in.EmployeeID, in.ServiceID)

	if err := uc.repo.AssignService(
		ctx,
		models.EmployeeService{EmployeeID: in.EmployeeID, ServiceID: in.ServiceID},
		schedules,
	); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		UserID:     in.ActorID,
		Action:     "service_assigned",
		Entity:     "employee",
		EntityID:   &in.EmployeeID,
		Metadata:   map[string]any{"serviceId": in.ServiceID, "periods": len(schedules)},
	})

	if schedules == nil {
		schedules = []models.Schedule{}
	}
	return schedules, nil
}

// ======================================================
// UNASSIGN
// ======================================================

type UnassignService struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUnassignService(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UnassignService {
	return &UnassignService{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the link and its schedules. Existing appointments are
// kept.
func (uc *UnassignService) Execute(
	ctx context.Context,
	in AssignmentInput,
) error {

	if err := checkPair(ctx, uc.repo, in); err != nil {
		return err
	}

	if err := uc.repo.UnassignService(ctx, in.EmployeeID, in.ServiceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("employee_not_assigned")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		UserID:     in.ActorID,
		Action:     "service_unassigned",
		Entity:     "employee",
		EntityID:   &in.EmployeeID,
		Metadata:   map[string]any{"serviceId": in.ServiceID},
	})

	return nil
}

// checkPair makes sure both rows exist and belong to the provider.
func checkPair(
	ctx context.Context,
	repo domain.Repository,
	in AssignmentInput,
) error {

	if _, err := repo.GetEmployee(ctx, in.ProviderID, in.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("employee_not_found")
		}
		return err
	}

	svc, err := repo.GetService(ctx, in.ProviderID, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("service_not_found")
		}
		return err
	}
	if svc.Deleted {
		return httperr.ErrNotFound("service_not_found")
	}
	return nil
}
