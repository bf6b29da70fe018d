package schedule

import (
	"sort"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

// FromBusinessHours copies the provider's default hours into schedule
// rows for one employee and service. A lunch break inside the working
// day splits it into two periods. Inactive or malformed days are skipped.
func FromBusinessHours(
	hours []models.BusinessHours,
	employeeID uint,
	serviceID uint,
) []models.Schedule {

	sorted := append([]models.BusinessHours(nil), hours...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weekday < sorted[j].Weekday
	})

	var out []models.Schedule
	for _, wh := range sorted {
		if !wh.Active || wh.Weekday < 0 || wh.Weekday > 6 {
			continue
		}

		start, err1 := timezone.MinutesFromClock(wh.StartTime)
		end, err2 := timezone.MinutesFromClock(wh.EndTime)
		if err1 != nil || err2 != nil || start >= end {
			continue
		}

		ranges := [][2]int{{start, end}}

		if wh.LunchStart != "" && wh.LunchEnd != "" {
			ls, errLS := timezone.MinutesFromClock(wh.LunchStart)
			le, errLE := timezone.MinutesFromClock(wh.LunchEnd)
			if errLS == nil && errLE == nil && start < ls && ls < le && le < end {
				ranges = [][2]int{{start, ls}, {le, end}}
			}
		}

		for i, r := range ranges {
			out = append(out, models.Schedule{
				EmployeeID: employeeID,
				ServiceID:  serviceID,
				DayOfWeek:  wh.Weekday,
				Period:     i + 1,
				StartTime:  timezone.ClockFromMinutes(r[0]),
				EndTime:    timezone.ClockFromMinutes(r[1]),
			})
		}
	}

	return out
}
