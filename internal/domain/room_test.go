package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoom(t *testing.T) {
	now := at(9, 0)

	room, err := NewRoom("  Boardroom  ", "3rd floor", 12, now)

	require.NoError(t, err)
	assert.NotEmpty(t, room.ID())
	assert.Equal(t, "Boardroom", room.Name(), "name is trimmed")
	assert.Equal(t, "3rd floor", room.Location())
	assert.Equal(t, 12, room.Capacity())
	assert.True(t, room.IsActive(), "new rooms start active")
}

func TestNewRoom_EmptyName(t *testing.T) {
	_, err := NewRoom("   ", "3rd floor", 12, at(9, 0))

	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewRoom_InvalidCapacity(t *testing.T) {
	_, err := NewRoom("Boardroom", "3rd floor", 0, at(9, 0))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewRoom("Boardroom", "3rd floor", -5, at(9, 0))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRoom_Rename(t *testing.T) {
	room, err := NewRoom("Boardroom", "3rd floor", 12, at(9, 0))
	require.NoError(t, err)

	require.NoError(t, room.Rename("War Room", at(9, 30)))
	assert.Equal(t, "War Room", room.Name())
	assert.Equal(t, at(9, 30), room.UpdatedAt())

	assert.ErrorIs(t, room.Rename("  ", at(9, 35)), ErrValidation)
	assert.Equal(t, "War Room", room.Name())
}

func TestRoom_ChangeCapacity(t *testing.T) {
	room, err := NewRoom("Boardroom", "3rd floor", 12, at(9, 0))
	require.NoError(t, err)

	require.NoError(t, room.ChangeCapacity(20, at(9, 30)))
	assert.Equal(t, 20, room.Capacity())

	assert.ErrorIs(t, room.ChangeCapacity(0, at(9, 35)), ErrValidation)
	assert.Equal(t, 20, room.Capacity())
}

func TestRoom_ActivateDeactivate(t *testing.T) {
	room, err := NewRoom("Boardroom", "3rd floor", 12, at(9, 0))
	require.NoError(t, err)

	room.Deactivate(at(9, 30))
	assert.False(t, room.IsActive())

	room.Activate(at(9, 45))
	assert.True(t, room.IsActive())
	assert.Equal(t, at(9, 45), room.UpdatedAt())
}

func TestRoom_IsAvailable(t *testing.T) {
	room, err := NewRoom("Boardroom", "3rd floor", 12, at(8, 0))
	require.NoError(t, err)

	taken := RestoreBooking(
		"bk-1", room.ID(), "user-1", "standup",
		at(10, 0), at(11, 0),
		BookingStatusConfirmed,
		at(9, 0), at(9, 0),
	)
	existing := []*Booking{taken}

	assert.False(t, room.IsAvailable(mustRange(t, at(10, 30), at(11, 30)), existing))
	assert.True(t, room.IsAvailable(mustRange(t, at(11, 0), at(12, 0)), existing), "touching the end boundary is fine")
	assert.True(t, room.IsAvailable(mustRange(t, at(9, 0), at(10, 0)), existing), "touching the start boundary is fine")
	assert.True(t, room.IsAvailable(mustRange(t, at(13, 0), at(14, 0)), existing))
}

func TestRoom_IsAvailable_CancelledDoesNotBlock(t *testing.T) {
	room, err := NewRoom("Boardroom", "3rd floor", 12, at(8, 0))
	require.NoError(t, err)

	cancelled := RestoreBooking(
		"bk-1", room.ID(), "user-1", "standup",
		at(10, 0), at(11, 0),
		BookingStatusCancelled,
		at(9, 0), at(9, 0),
	)

	assert.True(t, room.IsAvailable(mustRange(t, at(10, 0), at(11, 0)), []*Booking{cancelled}))
}

func TestRoom_IsAvailable_InactiveFailsClosed(t *testing.T) {
	room, err := NewRoom("Boardroom", "3rd floor", 12, at(8, 0))
	require.NoError(t, err)
	room.Deactivate(at(8, 30))

	assert.False(t, room.IsAvailable(mustRange(t, at(10, 0), at(11, 0)), nil))
}

func TestRoom_IsAvailable_NoBookings(t *testing.T) {
	room, err := NewRoom("Boardroom", "3rd floor", 12, at(8, 0))
	require.NoError(t, err)

	assert.True(t, room.IsAvailable(mustRange(t, at(10, 0), at(11, 0)), nil))
	assert.True(t, room.IsAvailable(mustRange(t, at(10, 0), at(11, 0)), []*Booking{}))
}
