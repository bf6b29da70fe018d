package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// StatusChangeInput identifies the appointment and who is acting on it.
// A staff caller passes its EmployeeID and may only touch its own
// appointments.
type StatusChangeInput struct {
	ProviderID    uint
	AppointmentID uint
	ActorID       *uint
	EmployeeID    *uint
}

type transition func(ap *models.Appointment, now time.Time) error

func changeStatus(
	ctx context.Context,
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	now func() time.Time,
	in StatusChangeInput,
	apply transition,
	action string,
) (*models.Appointment, error) {

	var ap *models.Appointment

	err := repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		found, err := tx.GetAppointment(ctx, in.ProviderID, in.AppointmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("appointment_not_found")
			}
			return err
		}
		if in.EmployeeID != nil && found.EmployeeID != *in.EmployeeID {
			return httperr.ErrNotFound("appointment_not_found")
		}

		if err := apply(found, now().UTC()); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, found); err != nil {
			return err
		}

		ap = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	dispatcher.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		UserID:     in.ActorID,
		Action:     action,
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
