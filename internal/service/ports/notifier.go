package ports

import (
	"context"

	"github.com/nugraharzk/room-booking-solution/internal/domain"
)

type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking, roomName string)
	NotifyBookingConfirmed(ctx context.Context, b *domain.Booking, roomName string)
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking, roomName string)
}
