package ports

import (
	"context"

	"github.com/nugraharzk/room-booking-solution/internal/domain"
)

type RoomRepo interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	// GetForUpdate loads the room with a row lock so concurrent
	// check-and-write sequences for the same room serialize. Must run
	// inside a unit of work.
	GetForUpdate(ctx context.Context, id string) (*domain.Room, error)
	GetByName(ctx context.Context, name string) (*domain.Room, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ListActive(ctx context.Context) ([]*domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
}
