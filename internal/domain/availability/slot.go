// Package availability marks generated slots as free or taken and computes
// the day-level counters shown on calendars.
package availability

import (
	"encoding/json"
	"time"
)

type Kind string

const (
	KindIndividual Kind = "individual"
	KindUnified    Kind = "unified"
)

// Slot is either an Individual or a Unified entry. Callers switch on the
// concrete type.
type Slot interface {
	Kind() Kind
	Start() time.Time
	Free() bool
}

// Individual is a start time of one pinned employee.
type Individual struct {
	Time       string    `json:"time"`
	Date       time.Time `json:"date"`
	EmployeeID uint      `json:"employeeId"`
	ServiceID  uint      `json:"serviceId"`
	Period     int       `json:"period"`
	Available  bool      `json:"available"`
	// BusyElsewhere marks a start the employee already holds for a
	// different service.
	BusyElsewhere bool `json:"busyElsewhere,omitempty"`
}

// Unified merges every employee that offers the service at the same time.
// EmployeeIDs lists only the employees still free.
type Unified struct {
	Time          string    `json:"time"`
	Date          time.Time `json:"date"`
	ServiceID     uint      `json:"serviceId"`
	EmployeeIDs   []uint    `json:"employeeIds"`
	EmployeeCount int       `json:"employeeCount"`
	Available     bool      `json:"available"`
}

func (Individual) Kind() Kind         { return KindIndividual }
func (s Individual) Start() time.Time { return s.Date }
func (s Individual) Free() bool       { return s.Available }
func (Unified) Kind() Kind            { return KindUnified }
func (s Unified) Start() time.Time    { return s.Date }
func (s Unified) Free() bool          { return s.EmployeeCount > 0 }

func (s Individual) MarshalJSON() ([]byte, error) {
	type plain Individual
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		plain
	}{KindIndividual, plain(s)})
}

func (s Unified) MarshalJSON() ([]byte, error) {
	type plain Unified
	if s.EmployeeIDs == nil {
		s.EmployeeIDs = []uint{}
	}
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		plain
	}{KindUnified, plain(s)})
}
