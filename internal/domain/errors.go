package domain

import "errors"

var (
	ErrInvalidRange      = errors.New("domain: open time must be before close time")
	ErrInvalidWeekday    = errors.New("domain: invalid weekday")
	ErrInvalidStatus     = errors.New("domain: invalid reservation status")
	ErrInvalidHolder     = errors.New("domain: holder must be either a user or a guest")
	ErrIllegalTransition = errors.New("domain: illegal status transition")
)
