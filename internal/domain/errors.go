package domain

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrBookingConflict     = errors.New("room already booked for this time range")
	ErrRoomNameTaken       = errors.New("room name is already taken")
	ErrRoomInactive        = errors.New("room is not active")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrConcurrencyConflict = errors.New("concurrent write conflict")
)

var (
	ErrValidation       = errors.New("validation error")
	ErrInvalidTimeRange = errors.New("invalid time range")
)
