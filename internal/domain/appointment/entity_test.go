package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

func TestLifecycle(t *testing.T) {
	now := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	t.Run("PendingConfirmComplete", func(t *testing.T) {
		ap := &models.Appointment{Status: string(InitialStatus())}

		require.NoError(t, Confirm(ap, now))
		assert.Equal(t, string(StatusConfirmed), ap.Status)
		require.NotNil(t, ap.ConfirmedAt)

		require.NoError(t, Complete(ap, now))
		assert.Equal(t, string(StatusCompleted), ap.Status)
		require.NotNil(t, ap.CompletedAt)
	})

	t.Run("PendingComplete", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusPending)}
		require.NoError(t, Complete(ap, now))
	})

	t.Run("CancelFromNonTerminal", func(t *testing.T) {
		for _, st := range []Status{StatusPending, StatusConfirmed} {
			ap := &models.Appointment{Status: string(st)}
			require.NoError(t, Cancel(ap, now))
			assert.Equal(t, string(StatusCancelled), ap.Status)
			assert.NotNil(t, ap.CancelledAt)
		}
	})

	t.Run("TerminalStatesAreFinal", func(t *testing.T) {
		for _, st := range []Status{StatusCompleted, StatusCancelled} {
			ap := &models.Appointment{Status: string(st)}
			assert.True(t, httperr.IsBusiness(Cancel(ap, now), "invalid_state"))
			assert.True(t, httperr.IsBusiness(Complete(ap, now), "invalid_state"))
			assert.True(t, httperr.IsBusiness(Confirm(ap, now), "invalid_state"))
			assert.Equal(t, string(st), ap.Status)
		}
	})

	t.Run("ConfirmOnlyFromPending", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed)}
		assert.Error(t, Confirm(ap, now))
	})
}

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive(StatusPending))
	assert.True(t, IsActive(StatusConfirmed))
	assert.True(t, IsActive(StatusCompleted))
	assert.False(t, IsActive(StatusCancelled))
	assert.False(t, IsActive(Status("scheduled")))
}
