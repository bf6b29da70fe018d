package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

func TestFromBusinessHours(t *testing.T) {
	hours := []models.BusinessHours{
		{Weekday: 2, Active: true, StartTime: "09:00", EndTime: "18:00", LunchStart: "12:00", LunchEnd: "13:00"},
		{Weekday: 1, Active: true, StartTime: "08:00", EndTime: "12:00"},
		{Weekday: 0, Active: false, StartTime: "08:00", EndTime: "12:00"},
		{Weekday: 3, Active: true, StartTime: "18:00", EndTime: "09:00"},
		{Weekday: 4, Active: true, StartTime: "bad", EndTime: "09:00"},
		{Weekday: 5, Active: true, StartTime: "09:00", EndTime: "12:00", LunchStart: "13:00", LunchEnd: "14:00"},
	}

	got := FromBusinessHours(hours, 7, 3)

	require.Len(t, got, 4)

	assert.Equal(t, models.Schedule{EmployeeID: 7, ServiceID: 3, DayOfWeek: 1, Period: 1, StartTime: "08:00", EndTime: "12:00"}, got[0])
	assert.Equal(t, models.Schedule{EmployeeID: 7, ServiceID: 3, DayOfWeek: 2, Period: 1, StartTime: "09:00", EndTime: "12:00"}, got[1])
	assert.Equal(t, models.Schedule{EmployeeID: 7, ServiceID: 3, DayOfWeek: 2, Period: 2, StartTime: "13:00", EndTime: "18:00"}, got[2])
	// lunch outside the working day is ignored
	assert.Equal(t, models.Schedule{EmployeeID: 7, ServiceID: 3, DayOfWeek: 5, Period: 1, StartTime: "09:00", EndTime: "12:00"}, got[3])
}

func TestFromBusinessHoursEmpty(t *testing.T) {
	assert.Empty(t, FromBusinessHours(nil, 1, 1))
}
