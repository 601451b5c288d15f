package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Room is a bookable resource. It is never hard-deleted; deactivating a
// room makes every availability check for it fail closed.
type Room struct {
	id        string
	name      string
	location  string
	capacity  int
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

type CreateRoomInput struct {
	Name     string
	Location string
	Capacity int
}

type UpdateRoomInput struct {
	Name     *string
	Capacity *int
	IsActive *bool
}

func NewRoom(name, location string, capacity int, now time.Time) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: room name is required", ErrValidation)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrValidation)
	}

	return &Room{
		id:        uuid.New().String(),
		name:      name,
		location:  location,
		capacity:  capacity,
		isActive:  true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// RestoreRoom rehydrates a persisted room. Storage only.
func RestoreRoom(id, name, location string, capacity int, isActive bool, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:        id,
		name:      name,
		location:  location,
		capacity:  capacity,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Room) ID() string           { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) Location() string     { return r.location }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) IsActive() bool       { return r.isActive }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }

func (r *Room) Rename(name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: room name is required", ErrValidation)
	}
	r.name = name
	r.updatedAt = now
	return nil
}

func (r *Room) ChangeCapacity(capacity int, now time.Time) error {
	if capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrValidation)
	}
	r.capacity = capacity
	r.updatedAt = now
	return nil
}

func (r *Room) Activate(now time.Time) {
	r.isActive = true
	r.updatedAt = now
}

func (r *Room) Deactivate(now time.Time) {
	r.isActive = false
	r.updatedAt = now
}

// IsAvailable reports whether the requested range is free given the
// room's existing bookings. Inactive rooms are never available;
// cancelled bookings do not block; touching boundaries are fine.
func (r *Room) IsAvailable(requested TimeRange, existing []*Booking) bool {
	if !r.isActive {
		return false
	}
	for _, b := range existing {
		if b.IsCancelled() {
			continue
		}
		if b.TimeRange().Overlaps(requested) {
			return false
		}
	}
	return true
}
