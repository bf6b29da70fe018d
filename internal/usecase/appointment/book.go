package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/metrics"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
	"github.com/BruksfildServices01/service-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	ProviderID uint
	ServiceID  uint
	// EmployeeID nil means any employee: round-robin picks one.
	EmployeeID *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	// AppointmentDate is RFC3339 or a wall-clock value in the provider
	// timezone ("2006-01-02T15:04").
	AppointmentDate string
	Notes           string

	// ActorID is the logged-in user, nil for public bookings.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo       domain.Repository
	roundRobin *RoundRobinTracker
	audit      *audit.Dispatcher
	log        zerolog.Logger
	now        func() time.Time
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *BookAppointment {
	return &BookAppointment{
		repo:       repo,
		roundRobin: NewRoundRobinTracker(repo),
		audit:      audit,
		log:        log.With().Str("usecase", "book_appointment").Logger(),
		now:        time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute books one appointment. Employee resolution, the final
// availability check, the client upsert, the insert and the cursor advance
// share one transaction: on any error nothing is written.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.execute(ctx, in)
	uc.record(in, ap, err)
	return ap, err
}

func (uc *BookAppointment) execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Provider and requested instant
	// --------------------------------------------------
	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("provider_not_found")
		}
		return nil, err
	}

	loc := timezone.Location(provider.Timezone)

	at, err := timezone.ParseDateTime(in.AppointmentDate, loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date_or_time")
	}
	at = at.In(loc).Truncate(time.Minute)

	// --------------------------------------------------
	// 2. Client fields
	// --------------------------------------------------
	name := strings.TrimSpace(in.ClientName)
	phone := validators.NormalizePhone(in.ClientPhone)
	email := strings.TrimSpace(in.ClientEmail)

	if name == "" || (phone == "" && email == "") {
		return nil, httperr.ErrValidation("missing_client_fields")
	}
	if email != "" && !validators.IsEmail(email) {
		return nil, httperr.ErrValidation("invalid_client_email")
	}

	// --------------------------------------------------
	// 3. Service, before any employee is resolved
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, provider.ID, in.ServiceID)
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

	// --------------------------------------------------
	// 4. Minimum advance
	// --------------------------------------------------
	earliest := uc.now().Add(time.Duration(provider.MinAdvanceMinutes) * time.Minute)
	if at.Before(earliest) {
		return nil, httperr.ErrValidation("too_soon")
	}

	// --------------------------------------------------
	// 5. Transaction
	// --------------------------------------------------
	var ap *models.Appointment

	err = uc.repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		var (
			employeeID uint
			assignment *Assignment
		)

		if in.EmployeeID != nil {
			if err := uc.checkEmployee(ctx, tx, provider.ID, *in.EmployeeID, service.ID); err != nil {
				return err
			}
			employeeID = *in.EmployeeID
		} else {
			a, err := uc.roundRobin.Select(ctx, tx, service.ID, service.DurationMin, at)
			if err != nil {
				return err
			}
			assignment = &a
			employeeID = a.EmployeeID
		}

		if err := uc.finalCheck(ctx, tx, employeeID, service, at); err != nil {
			return err
		}

		client, err := tx.UpsertClient(ctx, provider.ID, name, phone, email)
		if err != nil {
			return err
		}

		created := &models.Appointment{
			ProviderID: provider.ID,
			EmployeeID: employeeID,
			ServiceID:  service.ID,
			ClientID:   client.ID,
			Date:       timezone.Instant(at),
			Status:     string(domain.InitialStatus()),
			Notes:      strings.TrimSpace(in.Notes),
		}
		if err := tx.CreateAppointment(ctx, created); err != nil {
			return err
		}

		if assignment != nil {
			if err := uc.roundRobin.Advance(ctx, tx, service.ID, *assignment); err != nil {
				return err
			}
		}

		created.Client = *client
		created.Service = *service
		ap = created
		return nil
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict("slot_taken")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 6. Audit
	// --------------------------------------------------
	via := "direct"
	if in.EmployeeID == nil {
		via = "round_robin"
	}
	uc.audit.Dispatch(audit.Event{
		ProviderID: provider.ID,
		UserID:     in.ActorID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"employeeId": ap.EmployeeID,
			"serviceId":  ap.ServiceID,
			"date":       ap.Date,
			"via":        via,
		},
	})

	return ap, nil
}

// checkEmployee re-validates that a pinned employee belongs to the
// provider and performs the service.
func (uc *BookAppointment) checkEmployee(
	ctx context.Context,
	tx domain.Repository,
	providerID uint,
	employeeID uint,
	serviceID uint,
) error {

	if _, err := tx.GetEmployee(ctx, providerID, employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrNotFound("employee_not_found")
		}
		return err
	}

	assigned, err := tx.IsEmployeeAssigned(ctx, employeeID, serviceID)
	if err != nil {
		return err
	}
	if !assigned {
		return httperr.ErrNotFound("employee_not_assigned")
	}
	return nil
}

// finalCheck runs inside the booking transaction, after the employee is
// known. The unique index still backs it when two writers pass together.
func (uc *BookAppointment) finalCheck(
	ctx context.Context,
	tx domain.Repository,
	employeeID uint,
	service *models.Service,
	at time.Time,
) error {

	weekday := int(at.Weekday())
	schedules, err := tx.ListSchedules(ctx, schedule.Filter{
		EmployeeID: &employeeID,
		ServiceID:  &service.ID,
		DayOfWeek:  &weekday,
	})
	if err != nil {
		return err
	}
	if !slot.Offers(schedules, at, service.DurationMin) {
		return httperr.ErrConflict("outside_schedule")
	}

	busy, err := tx.HasActiveAppointmentAt(ctx, employeeID, at)
	if err != nil {
		return err
	}
	if busy {
		return httperr.ErrConflict("slot_taken")
	}
	return nil
}

func (uc *BookAppointment) record(
	in BookAppointmentInput,
	ap *models.Appointment,
	err error,
) {
	if err == nil {
		metrics.IncBooking(metrics.OutcomeBooked)
		uc.log.Info().
			Uint("provider_id", ap.ProviderID).
			Uint("service_id", ap.ServiceID).
			Uint("employee_id", ap.EmployeeID).
			Time("date", ap.Date).
			Uint("appointment_id", ap.ID).
			Msg("appointment booked")
		return
	}

	ev := uc.log.Info()
	outcome := metrics.OutcomeRejected

	switch httperr.KindOf(err) {
	case httperr.KindConflict:
		outcome = metrics.OutcomeConflict
	case httperr.KindNoAvailableEmployee:
		outcome = metrics.OutcomeNoAvailableEmployee
	case httperr.KindInternal:
		outcome = metrics.OutcomeError
		ev = uc.log.Error()
	}
	metrics.IncBooking(outcome)

	ev = ev.Err(err).
		Str("outcome", outcome).
		Uint("provider_id", in.ProviderID).
		Uint("service_id", in.ServiceID).
		Str("date", in.AppointmentDate)
	if in.EmployeeID != nil {
		ev = ev.Uint("employee_id", *in.EmployeeID)
	}
	ev.Msg("booking failed")
}
