package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/roundrobin"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/service-scheduler/internal/metrics"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// Assignment is a round-robin choice that has not been committed yet.
type Assignment struct {
	EmployeeID uint
	// Cursor is the last_index read under lock; Advance swaps it for
	// Cursor+1.
	Cursor   int
	Attempts int
}

// ======================================================
// USE CASE
// ======================================================

type RoundRobinTracker struct {
	repo domain.Repository
}

func NewRoundRobinTracker(repo domain.Repository) *RoundRobinTracker {
	return &RoundRobinTracker{repo: repo}
}

// Select locks the service cursor inside tx and walks the assigned
// employees from it. An employee is eligible when at is one of its
// generated slot starts for the service and it has no active appointment
// starting at at. at must be in the provider location.
func (t *RoundRobinTracker) Select(
	ctx context.Context,
	tx domain.Repository,
	serviceID uint,
	durationMin int,
	at time.Time,
) (Assignment, error) {

	employees, err := tx.ListServiceEmployees(ctx, serviceID)
	if err != nil {
		return Assignment{}, err
	}

	cursor, err := tx.LockCursor(ctx, serviceID)
	if err != nil {
		return Assignment{}, err
	}

	weekday := int(at.Weekday())
	schedules, err := tx.ListSchedules(ctx, schedule.Filter{
		ServiceID: &serviceID,
		DayOfWeek: &weekday,
	})
	if err != nil {
		return Assignment{}, err
	}

	byEmployee := make(map[uint][]models.Schedule)
	for _, s := range schedules {
		byEmployee[s.EmployeeID] = append(byEmployee[s.EmployeeID], s)
	}

	res, err := roundrobin.Pick(ctx, employees, cursor.LastIndex,
		func(ctx context.Context, employeeID uint) (bool, error) {
			if !slot.Offers(byEmployee[employeeID], at, durationMin) {
				return false, nil
			}
			busy, err := tx.HasActiveAppointmentAt(ctx, employeeID, at)
			if err != nil {
				return false, err
			}
			return !busy, nil
		},
	)
	if err != nil {
		return Assignment{}, err
	}

	metrics.ObserveRoundRobinAttempts(res.Attempts)

	return Assignment{
		EmployeeID: res.EmployeeID,
		Cursor:     cursor.LastIndex,
		Attempts:   res.Attempts,
	}, nil
}

// Advance moves the cursor one step. It must run in the same tx as the
// appointment insert so a failed booking leaves the cursor untouched.
func (t *RoundRobinTracker) Advance(
	ctx context.Context,
	tx domain.Repository,
	serviceID uint,
	a Assignment,
) error {
	return tx.AdvanceCursor(ctx, serviceID, a.Cursor)
}

// Assign chooses and commits the next employee for the service at at
// without creating an appointment. Booking goes through Select and Advance
// inside its own transaction instead.
func (t *RoundRobinTracker) Assign(
	ctx context.Context,
	serviceID uint,
	durationMin int,
	at time.Time,
) (uint, error) {

	var chosen uint
	err := t.repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		a, err := t.Select(ctx, tx, serviceID, durationMin, at)
		if err != nil {
			return err
		}
		if err := t.Advance(ctx, tx, serviceID, a); err != nil {
			return err
		}
		chosen = a.EmployeeID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return chosen, nil
}
