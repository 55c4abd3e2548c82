package domain

import "errors"

var (
	ErrInvalidTimeFormat  = errors.New("invalid time format")
	ErrInvalidDateFormat  = errors.New("invalid date format")
	ErrInvalidDateTime    = errors.New("invalid date/time")
	ErrInvalidTimezone    = errors.New("invalid timezone")
	ErrStorageWriteFailed = errors.New("storage write failed")
	ErrStorageReadFailed  = errors.New("storage read failed")
)
