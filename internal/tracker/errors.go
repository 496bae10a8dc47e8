package tracker

import "errors"

// Failure taxonomy for log and queue operations. Every violation is
// reported at the call that caused it and leaves the state untouched.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrDuplicateDate    = errors.New("date already logged")
	ErrFutureDate       = errors.New("date is in the future")
	ErrEmptyQueue       = errors.New("queue is empty")
	ErrInvalidDateRange = errors.New("end date is before start date")
	ErrNotFound         = errors.New("material not found")
	ErrNotStarted       = errors.New("material not started")
	ErrAlreadyStarted   = errors.New("material already started")
)
