package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T, now time.Time) *Booking {
	t.Helper()
	tr := mustRange(t, now.Add(time.Hour), now.Add(2*time.Hour))
	b, err := NewBooking("room-1", "user-1", "standup", tr, now)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	now := at(9, 0)
	tr := mustRange(t, at(10, 0), at(11, 0))

	b, err := NewBooking("room-1", "user-1", "standup", tr, now)

	require.NoError(t, err)
	assert.NotEmpty(t, b.ID())
	assert.Equal(t, "room-1", b.RoomID())
	assert.Equal(t, "user-1", b.CreatedByUserID())
	assert.Equal(t, "standup", b.Subject())
	assert.Equal(t, BookingStatusPending, b.Status())
	assert.Equal(t, now, b.CreatedAt())
	assert.Equal(t, now, b.StatusChangedAt())
}

func TestNewBooking_MissingRoom(t *testing.T) {
	tr := mustRange(t, at(10, 0), at(11, 0))

	_, err := NewBooking("", "user-1", "standup", tr, at(9, 0))

	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewBooking_MissingRequester(t *testing.T) {
	tr := mustRange(t, at(10, 0), at(11, 0))

	_, err := NewBooking("room-1", "", "standup", tr, at(9, 0))

	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewBooking_SubjectTooLong(t *testing.T) {
	tr := mustRange(t, at(10, 0), at(11, 0))

	_, err := NewBooking("room-1", "user-1", strings.Repeat("a", 201), tr, at(9, 0))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewBooking("room-1", "user-1", strings.Repeat("a", 200), tr, at(9, 0))
	assert.NoError(t, err)
}

func TestNewBooking_EndsInPast(t *testing.T) {
	tr := mustRange(t, at(10, 0), at(11, 0))

	_, err := NewBooking("room-1", "user-1", "standup", tr, at(12, 0))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewBooking("room-1", "user-1", "standup", tr, at(11, 0))
	assert.ErrorIs(t, err, ErrValidation, "booking ending exactly now is rejected")
}

func TestNewBooking_AlreadyStartedStillFuture(t *testing.T) {
	tr := mustRange(t, at(10, 0), at(11, 0))

	_, err := NewBooking("room-1", "user-1", "standup", tr, at(10, 30))

	assert.NoError(t, err, "a range in progress can still be booked")
}

func TestBooking_Confirm(t *testing.T) {
	now := at(9, 0)
	b := newTestBooking(t, now)

	err := b.Confirm(at(9, 5))

	require.NoError(t, err)
	assert.Equal(t, BookingStatusConfirmed, b.Status())
	assert.Equal(t, at(9, 5), b.StatusChangedAt())
}

func TestBooking_Confirm_NotPending(t *testing.T) {
	b := newTestBooking(t, at(9, 0))
	require.NoError(t, b.Cancel(at(9, 5)))

	err := b.Confirm(at(9, 10))

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, BookingStatusCancelled, b.Status())
}

func TestBooking_Cancel(t *testing.T) {
	b := newTestBooking(t, at(9, 0))

	require.NoError(t, b.Cancel(at(9, 5)))
	assert.Equal(t, BookingStatusCancelled, b.Status())

	// second cancel is a no-op
	require.NoError(t, b.Cancel(at(9, 10)))
	assert.Equal(t, BookingStatusCancelled, b.Status())
	assert.Equal(t, at(9, 5), b.StatusChangedAt(), "idempotent cancel does not touch the timestamp")
}

func TestBooking_Cancel_Confirmed(t *testing.T) {
	b := newTestBooking(t, at(9, 0))
	require.NoError(t, b.Confirm(at(9, 5)))

	err := b.Cancel(at(9, 10))

	require.NoError(t, err)
	assert.Equal(t, BookingStatusCancelled, b.Status())
}

func TestBooking_Cancel_Completed(t *testing.T) {
	b := newTestBooking(t, at(9, 0))
	require.NoError(t, b.Confirm(at(9, 5)))
	require.NoError(t, b.Complete(at(12, 0)))

	err := b.Cancel(at(12, 5))

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_Complete(t *testing.T) {
	b := newTestBooking(t, at(9, 0))
	require.NoError(t, b.Confirm(at(9, 5)))

	err := b.Complete(at(11, 30))

	require.NoError(t, err)
	assert.Equal(t, BookingStatusCompleted, b.Status())
}

func TestBooking_Complete_BeforeEnd(t *testing.T) {
	b := newTestBooking(t, at(9, 0))
	require.NoError(t, b.Confirm(at(9, 5)))

	err := b.Complete(at(10, 30))

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, BookingStatusConfirmed, b.Status())
}

func TestBooking_Complete_Pending(t *testing.T) {
	b := newTestBooking(t, at(9, 0))

	err := b.Complete(at(12, 0))

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_Reschedule(t *testing.T) {
	b := newTestBooking(t, at(9, 0))
	require.NoError(t, b.Confirm(at(9, 5)))

	newRange := mustRange(t, at(13, 0), at(14, 0))
	err := b.Reschedule(newRange, at(9, 10))

	require.NoError(t, err)
	assert.True(t, b.TimeRange().Equal(newRange))
	assert.Equal(t, BookingStatusPending, b.Status(), "rescheduling resets to pending")
}

func TestBooking_Reschedule_EndsInPast(t *testing.T) {
	b := newTestBooking(t, at(9, 0))

	newRange := mustRange(t, at(7, 0), at(8, 0))
	err := b.Reschedule(newRange, at(9, 10))

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, BookingStatusPending, b.Status())
}

func TestBooking_Reschedule_Cancelled(t *testing.T) {
	b := newTestBooking(t, at(9, 0))
	require.NoError(t, b.Cancel(at(9, 5)))

	err := b.Reschedule(mustRange(t, at(13, 0), at(14, 0)), at(9, 10))

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBooking_Reschedule_Completed(t *testing.T) {
	b := newTestBooking(t, at(9, 0))
	require.NoError(t, b.Confirm(at(9, 5)))
	require.NoError(t, b.Complete(at(12, 0)))

	err := b.Reschedule(mustRange(t, at(13, 0), at(14, 0)), at(12, 5))

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRestoreBooking(t *testing.T) {
	b := RestoreBooking(
		"bk-1", "room-1", "user-1", "retro",
		at(10, 0), at(11, 0),
		BookingStatusConfirmed,
		at(9, 0), at(9, 30),
	)

	assert.Equal(t, "bk-1", b.ID())
	assert.Equal(t, BookingStatusConfirmed, b.Status())
	assert.Equal(t, at(10, 0), b.TimeRange().Start())
	assert.Equal(t, at(11, 0), b.TimeRange().End())
	assert.Equal(t, at(9, 30), b.StatusChangedAt())
}
