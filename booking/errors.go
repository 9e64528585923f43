package booking

import "errors"

var (
	ErrInvalidInterval = errors.New("end_time must be after start_time")
	ErrForbidden       = errors.New("caller may not act for this unit")
	ErrConflict        = errors.New("area already reserved for this time range")
	ErrQuotaExceeded   = errors.New("reservation limit reached for this unit")
	ErrNotFound        = errors.New("reservation not found")
	ErrOwnerNotFound   = errors.New("unit owner not found")
)
