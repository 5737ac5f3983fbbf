package mtwist

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is wrapped by the panic value of Next, Nextf, Range and Rangef
	// when called with a non-positive divisor or with bounds that do not describe a
	// non-empty half-open interval.
	ErrInvalidArgument = errors.New("mtwist: invalid argument")

	// ErrUnseeded is the panic value when a zero-value generator is read before Seed.
	ErrUnseeded = errors.New("mtwist: generator used before seeding")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}
