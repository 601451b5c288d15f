package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BlockingStatuses are the statuses that keep a time range occupied;
// only cancelling a booking releases its window.
var BlockingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted}

const maxSubjectLen = 200

type CreateBookingInput struct {
	RoomID          string
	CreatedByUserID string
	Subject         string
	Start           time.Time
	End             time.Time
}

// transitions is the closed set of legal status changes. Cancel from
// cancelled is handled separately because it is an idempotent no-op.
var transitions = map[BookingStatus]map[BookingStatus]bool{
	BookingStatusPending: {
		BookingStatusConfirmed: true,
		BookingStatusCancelled: true,
	},
	BookingStatusConfirmed: {
		BookingStatusCompleted: true,
		BookingStatusCancelled: true,
	},
}

// Booking ties a room, a requester and a time range together and owns
// its own lifecycle rules. The overlap guard against sibling bookings is
// the caller's job; everything else lives here.
type Booking struct {
	id              string
	roomID          string
	createdByUserID string
	subject         string
	timeRange       TimeRange
	status          BookingStatus
	createdAt       time.Time
	statusChangedAt time.Time
}

func NewBooking(roomID, createdByUserID, subject string, tr TimeRange, now time.Time) (*Booking, error) {
	if roomID == "" {
		return nil, fmt.Errorf("%w: room id is required", ErrValidation)
	}
	if createdByUserID == "" {
		return nil, fmt.Errorf("%w: requester id is required", ErrValidation)
	}
	if len(subject) > maxSubjectLen {
		return nil, fmt.Errorf("%w: subject must be at most %d characters", ErrValidation, maxSubjectLen)
	}
	if !tr.End().After(now) {
		return nil, fmt.Errorf("%w: booking must end in the future", ErrValidation)
	}

	return &Booking{
		id:              uuid.New().String(),
		roomID:          roomID,
		createdByUserID: createdByUserID,
		subject:         subject,
		timeRange:       tr,
		status:          BookingStatusPending,
		createdAt:       now,
		statusChangedAt: now,
	}, nil
}

// RestoreBooking rehydrates a persisted booking. Storage only; it skips
// the creation-time guards on purpose (the table's CHECK constraint
// already holds end > start).
func RestoreBooking(
	id, roomID, createdByUserID, subject string,
	start, end time.Time,
	status BookingStatus,
	createdAt, statusChangedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		roomID:          roomID,
		createdByUserID: createdByUserID,
		subject:         subject,
		timeRange:       TimeRange{start: start.UTC(), end: end.UTC()},
		status:          status,
		createdAt:       createdAt,
		statusChangedAt: statusChangedAt,
	}
}

func (b *Booking) ID() string                 { return b.id }
func (b *Booking) RoomID() string             { return b.roomID }
func (b *Booking) CreatedByUserID() string    { return b.createdByUserID }
func (b *Booking) Subject() string            { return b.subject }
func (b *Booking) TimeRange() TimeRange       { return b.timeRange }
func (b *Booking) Status() BookingStatus      { return b.status }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) StatusChangedAt() time.Time { return b.statusChangedAt }

func (b *Booking) IsCancelled() bool { return b.status == BookingStatusCancelled }

func (b *Booking) transitionTo(next BookingStatus, now time.Time) error {
	if !transitions[b.status][next] {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.status, next)
	}
	b.status = next
	b.statusChangedAt = now
	return nil
}

// Confirm moves a pending booking to confirmed. The caller must have
// verified there is no overlapping non-cancelled booking for the room.
func (b *Booking) Confirm(now time.Time) error {
	return b.transitionTo(BookingStatusConfirmed, now)
}

// Cancel is idempotent: cancelling a cancelled booking is a no-op.
func (b *Booking) Cancel(now time.Time) error {
	if b.status == BookingStatusCancelled {
		return nil
	}
	return b.transitionTo(BookingStatusCancelled, now)
}

// Complete closes out a confirmed booking once its time range has ended.
func (b *Booking) Complete(now time.Time) error {
	if b.status == BookingStatusConfirmed && now.Before(b.timeRange.End()) {
		return fmt.Errorf("%w: booking has not ended yet", ErrInvalidTransition)
	}
	return b.transitionTo(BookingStatusCompleted, now)
}

// Reschedule moves the booking to a new range and resets it to pending,
// so a confirmed booking that moves has to be reconfirmed.
func (b *Booking) Reschedule(newRange TimeRange, now time.Time) error {
	if b.status != BookingStatusPending && b.status != BookingStatusConfirmed {
		return fmt.Errorf("%w: cannot reschedule a %s booking", ErrInvalidTransition, b.status)
	}
	if !newRange.End().After(now) {
		return fmt.Errorf("%w: booking must end in the future", ErrValidation)
	}
	b.timeRange = newRange
	b.status = BookingStatusPending
	b.statusChangedAt = now
	return nil
}
