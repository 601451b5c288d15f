package dto

import (
	"time"

	"github.com/nugraharzk/room-booking-solution/internal/domain"
)

type RoomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location,omitempty"`
	Capacity  int    `json:"capacity"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type BookingResponse struct {
	ID              string `json:"id"`
	RoomID          string `json:"room_id"`
	CreatedByUserID string `json:"created_by_user_id"`
	Subject         string `json:"subject,omitempty"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
	StatusChangedAt string `json:"status_changed_at"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToRoomResponse(r *domain.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID(),
		Name:      r.Name(),
		Location:  r.Location(),
		Capacity:  r.Capacity(),
		IsActive:  r.IsActive(),
		CreatedAt: r.CreatedAt().Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt().Format(time.RFC3339),
	}
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID(),
		RoomID:          b.RoomID(),
		CreatedByUserID: b.CreatedByUserID(),
		Subject:         b.Subject(),
		StartTime:       b.TimeRange().Start().Format(time.RFC3339),
		EndTime:         b.TimeRange().End().Format(time.RFC3339),
		Status:          string(b.Status()),
		CreatedAt:       b.CreatedAt().Format(time.RFC3339),
		StatusChangedAt: b.StatusChangedAt().Format(time.RFC3339),
	}
}
