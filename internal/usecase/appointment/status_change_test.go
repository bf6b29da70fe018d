package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
)

func TestAppointmentLifecycle(t *testing.T) {
	e := newEnv(t, 1)
	emp := e.employees[0].ID
	ctx := context.Background()

	ap, err := e.booker().Execute(ctx, e.input("2025-01-10T10:00", &emp))
	require.NoError(t, err)

	in := StatusChangeInput{ProviderID: e.provider.ID, AppointmentID: ap.ID}

	confirmed, err := NewConfirmAppointment(e.repo, nil).Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)

	_, err = NewConfirmAppointment(e.repo, nil).Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	completed, err := NewCompleteAppointment(e.repo, nil).Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", completed.Status)

	_, err = NewCancelAppointment(e.repo, nil).Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestCancelFreesSlot(t *testing.T) {
	e := newEnv(t, 1)
	emp := e.employees[0].ID
	ctx := context.Background()

	ap, err := e.booker().Execute(ctx, e.input("2025-01-10T10:00", &emp))
	require.NoError(t, err)

	cancelled, err := NewCancelAppointment(e.repo, nil).Execute(ctx, StatusChangeInput{ProviderID: e.provider.ID, AppointmentID: ap.ID})
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = e.booker().Execute(ctx, e.input("2025-01-10T10:00", &emp))
	assert.NoError(t, err)
}

func TestStatusChangeScoping(t *testing.T) {
	e := newEnv(t, 2)
	emp := e.employees[0].ID
	other := e.employees[1].ID
	ctx := context.Background()

	ap, err := e.booker().Execute(ctx, e.input("2025-01-10T10:00", &emp))
	require.NoError(t, err)

	_, err = NewCancelAppointment(e.repo, nil).Execute(ctx, StatusChangeInput{ProviderID: e.provider.ID, AppointmentID: ap.ID, EmployeeID: &other})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = NewCancelAppointment(e.repo, nil).Execute(ctx, StatusChangeInput{ProviderID: e.provider.ID + 1, AppointmentID: ap.ID})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = NewCancelAppointment(e.repo, nil).Execute(ctx, StatusChangeInput{ProviderID: e.provider.ID, AppointmentID: ap.ID, EmployeeID: &emp})
	assert.NoError(t, err)
}
