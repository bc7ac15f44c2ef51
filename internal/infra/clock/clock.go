// Package clock provides the wall-clock implementation of the domain
// Clock interface.
package clock

import (
	"time"

	"librarium/internal/domain/service"
)

type systemClock struct{}

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() service.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
