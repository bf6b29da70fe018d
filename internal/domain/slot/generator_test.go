package slot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

// 2025-01-10 is a Friday.
var friday = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

func period(emp uint, p int, start, end string) models.Schedule {
	return models.Schedule{EmployeeID: emp, ServiceID: 1, DayOfWeek: 5, Period: p, StartTime: start, EndTime: end}
}

func times(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Time)
	}
	return out
}

func TestGenerateThirtyMinutes(t *testing.T) {
	got := Generate([]models.Schedule{period(1, 1, "09:00", "10:00")}, 30, friday)

	assert.Equal(t, []string{"09:00", "09:30"}, times(got))
	assert.Equal(t, time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC), got[1].Date)
	assert.Equal(t, uint(1), got[0].EmployeeID)
	assert.Equal(t, uint(1), got[0].ServiceID)
}

func TestGenerateNoPartialSlot(t *testing.T) {
	got := Generate([]models.Schedule{period(1, 1, "09:00", "10:00")}, 45, friday)
	assert.Equal(t, []string{"09:00"}, times(got))

	short := Generate([]models.Schedule{period(1, 1, "09:00", "09:20")}, 30, friday)
	assert.Empty(t, short)
}

func TestGenerateSplitShiftInPeriodOrder(t *testing.T) {
	schedules := []models.Schedule{
		period(1, 2, "14:00", "15:00"),
		period(1, 1, "09:00", "10:00"),
	}

	got := Generate(schedules, 30, friday)

	assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, times(got))
	assert.Equal(t, 1, got[0].Period)
	assert.Equal(t, 2, got[3].Period)
}

func TestGenerateClosedDay(t *testing.T) {
	assert.Empty(t, Generate(nil, 30, friday))

	monday := []models.Schedule{{EmployeeID: 1, ServiceID: 1, DayOfWeek: 1, Period: 1, StartTime: "09:00", EndTime: "17:00"}}
	assert.Empty(t, Generate(monday, 30, friday))
}

func TestGenerateRejectsNonPositiveDuration(t *testing.T) {
	s := []models.Schedule{period(1, 1, "09:00", "10:00")}
	assert.Nil(t, Generate(s, 0, friday))
	assert.Nil(t, Generate(s, -15, friday))
}

func TestGenerateSkipsMalformedPeriods(t *testing.T) {
	s := []models.Schedule{
		period(1, 1, "10:00", "09:00"),
		period(1, 2, "xx", "12:00"),
		period(1, 3, "12:00", "12:30"),
	}
	assert.Equal(t, []string{"12:00"}, times(Generate(s, 30, friday)))
}

func TestGenerateIsDeterministic(t *testing.T) {
	s := []models.Schedule{
		period(2, 1, "09:00", "11:00"),
		period(1, 1, "09:00", "11:00"),
		period(1, 2, "13:00", "17:00"),
	}

	first := Generate(s, 25, friday)
	second := Generate(s, 25, friday)

	assert.Equal(t, first, second)
}

func TestGenerateSlotsStayInsidePeriods(t *testing.T) {
	periods := []models.Schedule{
		period(1, 1, "08:10", "11:55"),
		period(1, 2, "13:00", "18:07"),
		period(2, 1, "07:00", "07:59"),
	}

	for _, dur := range []int{5, 15, 20, 30, 45, 50, 60, 90, 240} {
		for _, c := range Generate(periods, dur, friday) {
			m, err := timezone.MinutesFromClock(c.Time)
			require.NoError(t, err)

			var owner *models.Schedule
			for i := range periods {
				if periods[i].EmployeeID == c.EmployeeID && periods[i].Period == c.Period {
					owner = &periods[i]
				}
			}
			require.NotNil(t, owner)

			start, _ := timezone.MinutesFromClock(owner.StartTime)
			end, _ := timezone.MinutesFromClock(owner.EndTime)
			assert.GreaterOrEqual(t, m, start, "duration %d slot %s", dur, c.Time)
			assert.LessOrEqual(t, m+dur, end, "duration %d slot %s", dur, c.Time)
		}
	}
}

func TestGenerateUsesDateLocation(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, loc)

	got := Generate([]models.Schedule{period(1, 1, "09:00", "09:30")}, 30, day)

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), got[0].Date.UTC())
}

func TestOffers(t *testing.T) {
	s := []models.Schedule{
		period(1, 1, "09:00", "12:00"),
		period(1, 2, "14:00", "18:00"),
	}
	at := func(h, m int) time.Time { return time.Date(2025, 1, 10, h, m, 0, 0, time.UTC) }

	assert.True(t, Offers(s, at(9, 0), 30))
	assert.True(t, Offers(s, at(11, 30), 30))
	assert.True(t, Offers(s, at(14, 30), 30))
	assert.False(t, Offers(s, at(11, 45), 30))
	assert.False(t, Offers(s, at(12, 30), 30))
	assert.False(t, Offers(s, at(14, 10), 30))
	assert.False(t, Offers(s, at(9, 10), 30))
	assert.False(t, Offers(s, at(8, 59), 30))
	assert.False(t, Offers(s, at(9, 0).AddDate(0, 0, 1), 30))
	assert.False(t, Offers(s, at(9, 0), 0))
}

func TestOffersMatchesGenerate(t *testing.T) {
	loc := timezone.Location("America/Sao_Paulo")
	day := time.Date(2025, 1, 10, 0, 0, 0, 0, loc)
	s := []models.Schedule{
		period(1, 1, "08:15", "12:00"),
		period(1, 2, "13:40", "18:05"),
	}

	for _, dur := range []int{15, 25, 30, 45, 60} {
		generated := map[string]bool{}
		for _, c := range Generate(s, dur, day) {
			generated[c.Time] = true
		}
		for m := 0; m < 24*60; m++ {
			at := timezone.At(day, m, loc)
			assert.Equal(t, generated[timezone.ClockFromMinutes(m)], Offers(s, at, dur),
				"duration %d at %s", dur, timezone.ClockFromMinutes(m))
		}
	}
}
