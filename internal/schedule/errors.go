package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every ValidationError raised for a day or
	// hour outside the grid.
	ErrOutOfRange = errors.New("out of range")

	ErrBusy           = errors.New("schedule: another load or save is in flight")
	ErrClosed         = errors.New("schedule: editing session closed")
	ErrDragInProgress = errors.New("schedule: a paint drag is already active")
)

// ValidationError reports misuse of the grid API or malformed transport data.
type ValidationError struct {
	Field  string
	Value  any
	Reason string

	outOfRange bool
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrOutOfRange && e.outOfRange
}

func rangeError(field string, value, max int) error {
	return &ValidationError{
		Field:      field,
		Value:      value,
		Reason:     fmt.Sprintf("must be within 0..%d", max),
		outOfRange: true,
	}
}

// NetworkError wraps a failed gateway call made by a ScheduleController.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s schedules: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func checkDay(day int) error {
	if day < 0 || day >= DaysPerWeek {
		return rangeError("day", day, DaysPerWeek-1)
	}
	return nil
}

func checkHour(hour int) error {
	if hour < 0 || hour >= HoursPerDay {
		return rangeError("hour", hour, HoursPerDay-1)
	}
	return nil
}
