// Package slot turns recurring weekly schedules into concrete bookable
// start times for one calendar date.
package slot

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

// Candidate is a generated start time, before occupancy is known.
type Candidate struct {
	Time       string    `json:"time"`
	Date       time.Time `json:"date"`
	EmployeeID uint      `json:"employeeId"`
	ServiceID  uint      `json:"serviceId"`
	Period     int       `json:"period"`
}

// Generate emits one candidate every durationMin minutes inside each
// period, never past the period end. The location of date is the
// provider's; slot times are wall-clock values in it.
//
// Schedules for other weekdays are ignored. Output is ordered by employee,
// then period, then time. A non-positive duration yields nothing: callers
// must reject it before getting here.
func Generate(schedules []models.Schedule, durationMin int, date time.Time) []Candidate {
	if durationMin <= 0 {
		return nil
	}

	loc := date.Location()
	weekday := int(date.Weekday())

	sorted := make([]models.Schedule, 0, len(schedules))
	for _, s := range schedules {
		if s.DayOfWeek == weekday {
			sorted = append(sorted, s)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EmployeeID != sorted[j].EmployeeID {
			return sorted[i].EmployeeID < sorted[j].EmployeeID
		}
		return sorted[i].Period < sorted[j].Period
	})

	var out []Candidate
	for _, s := range sorted {
		start, end, ok := bounds(s)
		if !ok {
			continue
		}

		for cur := start; cur+durationMin <= end; cur += durationMin {
			out = append(out, Candidate{
				Time:       timezone.ClockFromMinutes(cur),
				Date:       timezone.At(date, cur, loc),
				EmployeeID: s.EmployeeID,
				ServiceID:  s.ServiceID,
				Period:     s.Period,
			})
		}
	}

	return out
}

// Offers reports whether at is one of the start times Generate would emit
// for the schedules on at's weekday: inside a period, aligned to the
// durationMin grid from the period start, and ending by the period end.
// at must already be in the provider location.
func Offers(schedules []models.Schedule, at time.Time, durationMin int) bool {
	if durationMin <= 0 {
		return false
	}

	weekday := int(at.Weekday())
	minute := at.Hour()*60 + at.Minute()

	for _, s := range schedules {
		if s.DayOfWeek != weekday {
			continue
		}
		start, end, ok := bounds(s)
		if !ok {
			continue
		}
		if minute < start || minute+durationMin > end {
			continue
		}
		if (minute-start)%durationMin == 0 {
			return true
		}
	}
	return false
}

func bounds(s models.Schedule) (int, int, bool) {
	start, err := timezone.MinutesFromClock(s.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err := timezone.MinutesFromClock(s.EndTime)
	if err != nil {
		return 0, 0, false
	}
	return start, end, start < end
}
