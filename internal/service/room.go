package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nugraharzk/room-booking-solution/internal/domain"
	"github.com/nugraharzk/room-booking-solution/internal/service/ports"
)

type RoomService struct {
	repo  ports.RoomRepo
	clock domain.Clock
}

func NewRoomService(repo ports.RoomRepo, clock domain.Clock) *RoomService {
	return &RoomService{
		repo:  repo,
		clock: clock,
	}
}

func (s *RoomService) Create(ctx context.Context, input domain.CreateRoomInput) (*domain.Room, error) {
	room, err := domain.NewRoom(input.Name, input.Location, input.Capacity, s.clock.Now())
	if err != nil {
		return nil, err
	}

	// Uniqueness is case-insensitive; the unique index on lower(name)
	// is the authority, this check just gives a friendlier fast path.
	taken, err := s.repo.ExistsByName(ctx, room.Name())
	if err != nil {
		return nil, fmt.Errorf("check room name: %w", err)
	}
	if taken {
		return nil, domain.ErrRoomNameTaken
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id string, input domain.UpdateRoomInput) (*domain.Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	if input.Name != nil {
		if err = room.Rename(*input.Name, now); err != nil {
			return nil, err
		}

		// Renaming onto another room's name should fail the same way a
		// duplicate create does, not bubble up as a bare index violation.
		if other, err := s.repo.GetByName(ctx, room.Name()); err == nil && other.ID() != room.ID() {
			return nil, domain.ErrRoomNameTaken
		} else if err != nil && !errors.Is(err, domain.ErrRoomNotFound) {
			return nil, fmt.Errorf("check room name: %w", err)
		}
	}
	if input.Capacity != nil {
		if err = room.ChangeCapacity(*input.Capacity, now); err != nil {
			return nil, err
		}
	}
	if input.IsActive != nil {
		if *input.IsActive {
			room.Activate(now)
		} else {
			room.Deactivate(now)
		}
	}

	if err = s.repo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	return room, nil
}

func (s *RoomService) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RoomService) ListActive(ctx context.Context) ([]*domain.Room, error) {
	return s.repo.ListActive(ctx)
}
