package availability

import (
	"sort"
	"time"

	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
	"github.com/BruksfildServices01/service-scheduler/internal/timezone"
)

// ===============================
// Occupancy
// ===============================

type occupancyKey struct {
	employeeID uint
	serviceID  uint
	wallClock  string
}

// Occupancy indexes active appointments by employee, service and
// provider-local wall clock. Slots and stored instants are compared only
// through timezone.WallClock so both sides use the same representation.
type Occupancy struct {
	loc      *time.Location
	taken    map[occupancyKey]struct{}
	employee map[occupancyKey]struct{}
}

func NewOccupancy(appointments []models.Appointment, loc *time.Location) Occupancy {
	o := Occupancy{
		loc:      loc,
		taken:    make(map[occupancyKey]struct{}, len(appointments)),
		employee: make(map[occupancyKey]struct{}, len(appointments)),
	}
	for _, ap := range appointments {
		if !domain.IsActive(domain.Status(ap.Status)) {
			continue
		}
		wc := timezone.WallClock(ap.Date, loc)
		o.taken[occupancyKey{ap.EmployeeID, ap.ServiceID, wc}] = struct{}{}
		o.employee[occupancyKey{employeeID: ap.EmployeeID, wallClock: wc}] = struct{}{}
	}
	return o
}

// Taken reports whether the employee already has an active appointment
// for the service at exactly at.
func (o Occupancy) Taken(employeeID, serviceID uint, at time.Time) bool {
	_, ok := o.taken[occupancyKey{employeeID, serviceID, timezone.WallClock(at, o.loc)}]
	return ok
}

// Busy ignores the service: any active appointment of the employee that
// starts at at counts. Booking rejects such a start, so the resolver never
// offers it.
func (o Occupancy) Busy(employeeID uint, at time.Time) bool {
	_, ok := o.employee[occupancyKey{employeeID: employeeID, wallClock: timezone.WallClock(at, o.loc)}]
	return ok
}

// ===============================
// Resolution
// ===============================

// Individuals keeps one entry per candidate, in generator order. A start
// held by the employee for another service is unavailable and flagged
// BusyElsewhere.
func Individuals(cands []slot.Candidate, occ Occupancy) []Individual {
	out := make([]Individual, 0, len(cands))
	for _, c := range cands {
		taken := occ.Taken(c.EmployeeID, c.ServiceID, c.Date)
		elsewhere := !taken && occ.Busy(c.EmployeeID, c.Date)
		out = append(out, Individual{
			Time:          c.Time,
			Date:          c.Date,
			EmployeeID:    c.EmployeeID,
			ServiceID:     c.ServiceID,
			Period:        c.Period,
			Available:     !taken && !elsewhere,
			BusyElsewhere: elsewhere,
		})
	}
	return out
}

// Unify merges candidates sharing (time, service) across employees. An
// employee busy at that start, for any service, is left out. An entry whose
// employees are all busy is kept with a zero count so the calendar can
// still show it as unavailable.
func Unify(cands []slot.Candidate, occ Occupancy) []Unified {
	type groupKey struct {
		wallClock string
		serviceID uint
	}

	index := make(map[groupKey]int)
	seen := make(map[groupKey]map[uint]struct{})
	var out []Unified

	for _, c := range cands {
		k := groupKey{timezone.WallClock(c.Date, occ.loc), c.ServiceID}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			seen[k] = make(map[uint]struct{})
			out = append(out, Unified{Time: c.Time, Date: c.Date, ServiceID: c.ServiceID})
		}

		if _, dup := seen[k][c.EmployeeID]; dup {
			continue
		}
		seen[k][c.EmployeeID] = struct{}{}

		if occ.Busy(c.EmployeeID, c.Date) {
			continue
		}
		out[i].EmployeeIDs = append(out[i].EmployeeIDs, c.EmployeeID)
	}

	for i := range out {
		sort.Slice(out[i].EmployeeIDs, func(a, b int) bool {
			return out[i].EmployeeIDs[a] < out[i].EmployeeIDs[b]
		})
		out[i].EmployeeCount = len(out[i].EmployeeIDs)
		out[i].Available = out[i].EmployeeCount > 0
	}

	sort.SliceStable(out, func(a, b int) bool {
		if !out[a].Date.Equal(out[b].Date) {
			return out[a].Date.Before(out[b].Date)
		}
		return out[a].ServiceID < out[b].ServiceID
	})

	return out
}

// Resolve returns individual entries when an employee is pinned and
// unified entries otherwise.
func Resolve(cands []slot.Candidate, occ Occupancy, pinned bool) []Slot {
	var out []Slot
	if pinned {
		for _, s := range Individuals(cands, occ) {
			out = append(out, s)
		}
		return out
	}
	for _, s := range Unify(cands, occ) {
		out = append(out, s)
	}
	return out
}

// ===============================
// Day summary
// ===============================

type Summary struct {
	Date           string `json:"date,omitempty"`
	TotalSlots     int    `json:"totalSlots"`
	ReservedSlots  int    `json:"reservedSlots"`
	AvailableSlots int    `json:"availableSlots"`
}

// Summarize counts totalSlots regardless of occupancy and reservedSlots as
// the active appointments among the given ones. The appointments must
// already be filtered to the day, service and employee being summarized.
func Summarize(totalSlots int, appointments []models.Appointment) Summary {
	reserved := 0
	for _, ap := range appointments {
		if domain.IsActive(domain.Status(ap.Status)) {
			reserved++
		}
	}

	available := totalSlots - reserved
	if available < 0 {
		available = 0
	}

	return Summary{
		TotalSlots:     totalSlots,
		ReservedSlots:  reserved,
		AvailableSlots: available,
	}
}
