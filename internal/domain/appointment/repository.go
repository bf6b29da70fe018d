package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/service-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// Filter narrows ListAppointments. From/To bound the start instant as
// [From, To).
type Filter struct {
	ProviderID uint
	EmployeeID *uint
	ServiceID  *uint
	From       *time.Time
	To         *time.Time
	ActiveOnly bool
}

type Repository interface {
	schedule.Store

	// WithinTransaction runs fn against a repository bound to one
	// transaction. Returning an error rolls every write back.
	WithinTransaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Provider --------
	GetProviderByID(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	GetProviderBySlug(
		ctx context.Context,
		slug string,
	) (*models.Provider, error)

	// -------- Service / Employee --------
	GetService(
		ctx context.Context,
		providerID uint,
		serviceID uint,
	) (*models.Service, error)

	GetEmployee(
		ctx context.Context,
		providerID uint,
		employeeID uint,
	) (*models.Employee, error)

	IsEmployeeAssigned(
		ctx context.Context,
		employeeID uint,
		serviceID uint,
	) (bool, error)

	// ListServiceEmployees returns the ids of the employees assigned to
	// the service, ascending.
	ListServiceEmployees(
		ctx context.Context,
		serviceID uint,
	) ([]uint, error)

	// -------- Client --------
	UpsertClient(
		ctx context.Context,
		providerID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// HasActiveAppointmentAt reports whether the employee already holds a
	// non-cancelled appointment starting at exactly at.
	HasActiveAppointmentAt(
		ctx context.Context,
		employeeID uint,
		at time.Time,
	) (bool, error)

	ListAppointments(
		ctx context.Context,
		f Filter,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		providerID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Round-robin cursor --------

	// LockCursor creates the service cursor at zero if missing and returns
	// it locked for the rest of the transaction.
	LockCursor(
		ctx context.Context,
		serviceID uint,
	) (*models.RoundRobinCursor, error)

	// AdvanceCursor moves the cursor from expected to expected+1. It fails
	// with ErrCursorMoved when another writer got there first.
	AdvanceCursor(
		ctx context.Context,
		serviceID uint,
		expected int,
	) error
}
