// Package roundrobin chooses the employee for bookings that do not name
// one, rotating over the service's employees with a persisted cursor.
package roundrobin

import (
	"context"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
)

// Eligible reports whether an employee can take the requested instant.
type Eligible func(ctx context.Context, employeeID uint) (bool, error)

type Result struct {
	EmployeeID uint
	// CandidateIndex is the position in the employee list that accepted.
	CandidateIndex int
	// Attempts counts the employees checked, the accepted one included.
	Attempts int
	// NextIndex is the cursor value to persist. It is always lastIndex+1,
	// however many candidates were skipped.
	NextIndex int
}

// Pick walks employees starting at lastIndex mod len(employees) and returns
// the first one accepted by eligible. Every employee is tried at most once.
func Pick(
	ctx context.Context,
	employees []uint,
	lastIndex int,
	eligible Eligible,
) (Result, error) {
	n := len(employees)
	if n == 0 {
		return Result{}, httperr.ErrNoAvailableEmployee
	}
	if lastIndex < 0 {
		lastIndex = 0
	}

	for attempt := 0; attempt < n; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		idx := (lastIndex + attempt) % n
		ok, err := eligible(ctx, employees[idx])
		if err != nil {
			return Result{}, err
		}
		if ok {
			return Result{
				EmployeeID:     employees[idx],
				CandidateIndex: idx,
				Attempts:       attempt + 1,
				NextIndex:      lastIndex + 1,
			}, nil
		}
	}

	return Result{Attempts: n}, httperr.ErrNoAvailableEmployee
}
