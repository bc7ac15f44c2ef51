package service

import "time"

// Clock abstracts wall-clock time so loan dates and the employee age
// gate stay deterministic under test.
type Clock interface {
	Now() time.Time
}
