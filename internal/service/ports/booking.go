package ports

import (
	"context"
	"time"

	"github.com/nugraharzk/room-booking-solution/internal/domain"
)

type BookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	// HasOverlap reports whether any non-cancelled booking for the room
	// overlaps [start, end). excludeID skips the booking's own row and
	// may be empty.
	HasOverlap(ctx context.Context, roomID string, start, end time.Time, excludeID string) (bool, error)
	ListOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeID string) ([]*domain.Booking, error)
	ListByRoom(ctx context.Context, roomID string, from, to time.Time) ([]*domain.Booking, error)
	// CompleteElapsed marks confirmed bookings whose end time has passed
	// as completed and returns them.
	CompleteElapsed(ctx context.Context) ([]*domain.Booking, error)
}
