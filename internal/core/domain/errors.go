package domain

import "errors"

var (
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrInsufficientAvailable = errors.New("not enough quantity available")
	ErrOverDeallocation      = errors.New("deallocation exceeds allocated quantity")
	ErrNegativeQuantity      = errors.New("total quantity cannot be negative")
	ErrBelowAllocated        = errors.New("total quantity below allocated quantity")
	ErrInvalidDate           = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidTime           = errors.New("invalid time, want HH:MM")
)
