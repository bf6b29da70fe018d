package appointment

import "github.com/BruksfildServices01/service-scheduler/internal/httperr"

// ErrCursorMoved is returned when the round-robin cursor changed between
// read and update. The booking is rolled back and reported as a conflict.
var ErrCursorMoved = httperr.ErrConflict("round_robin_moved")
