package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nugraharzk/room-booking-solution/internal/domain"
	"github.com/nugraharzk/room-booking-solution/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

type RoomSvc interface {
	Create(ctx context.Context, input domain.CreateRoomInput) (*domain.Room, error)
	Update(ctx context.Context, id string, input domain.UpdateRoomInput) (*domain.Room, error)
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	ListActive(ctx context.Context) ([]*domain.Room, error)
}

type BookingSvc interface {
	Create(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error)
	Confirm(ctx context.Context, id string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
	Reschedule(ctx context.Context, id string, newStart, newEnd time.Time) (*domain.Booking, error)
	Complete(ctx context.Context, id string) (*domain.Booking, error)
	CheckAvailability(ctx context.Context, roomID string, start, end time.Time) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByRoom(ctx context.Context, roomID string, from, to time.Time) ([]*domain.Booking, error)
}

type Handler struct {
	roomService    RoomSvc
	bookingService BookingSvc
}

func NewHandler(roomService RoomSvc, bookingService BookingSvc) *Handler {
	return &Handler{
		roomService:    roomService,
		bookingService: bookingService,
	}
}

// Rooms

func (h *Handler) CreateRoom(c *ginext.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), domain.CreateRoomInput{
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoomResponse(room))
}

func (h *Handler) GetRoom(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid room id"})
		return
	}

	room, err := h.roomService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *Handler) ListRooms(c *ginext.Context) {
	rooms, err := h.roomService.ListActive(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		resp = append(resp, dto.ToRoomResponse(r))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateRoom(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid room id"})
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), id, domain.UpdateRoomInput{
		Name:     req.Name,
		Capacity: req.Capacity,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRoomResponse(room))
}

func (h *Handler) CheckAvailability(c *ginext.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid room id"})
		return
	}

	start, end, ok := h.parseWindow(c, "start_time", "end_time")
	if !ok {
		return
	}

	available, err := h.bookingService.CheckAvailability(c.Request.Context(), roomID, start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvailabilityResponse{
		RoomID:    roomID,
		StartTime: start.Format(time.RFC3339),
		EndTime:   end.Format(time.RFC3339),
		Available: available,
	})
}

func (h *Handler) ListRoomBookings(c *ginext.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid room id"})
		return
	}

	from, to, ok := h.parseWindow(c, "from", "to")
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListByRoom(c.Request.Context(), roomID, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, dto.ToBookingResponse(b))
	}

	c.JSON(http.StatusOK, resp)
}

// Bookings

func (h *Handler) CreateBooking(c *ginext.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid start_time format, expected RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid end_time format, expected RFC3339"})
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), domain.CreateBookingInput{
		RoomID:          req.RoomID,
		CreatedByUserID: req.UserID,
		Subject:         req.Subject,
		Start:           start,
		End:             end,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *Handler) GetBooking(c *ginext.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) ConfirmBooking(c *ginext.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Confirm(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) CancelBooking(c *ginext.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) RescheduleBooking(c *ginext.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req dto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid start_time format, expected RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid end_time format, expected RFC3339"})
		return
	}

	booking, err := h.bookingService.Reschedule(c.Request.Context(), id, start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) CompleteBooking(c *ginext.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Complete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) bookingID(c *ginext.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid booking id"})
		return "", false
	}
	return id, true
}

func (h *Handler) parseWindow(c *ginext.Context, startKey, endKey string) (time.Time, time.Time, bool) {
	start, err := time.Parse(time.RFC3339, c.Query(startKey))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + startKey + " format, expected RFC3339"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query(endKey))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + endKey + " format, expected RFC3339"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrRoomNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrBookingConflict),
		errors.Is(err, domain.ErrRoomNameTaken),
		errors.Is(err, domain.ErrRoomInactive),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTimeRange):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
