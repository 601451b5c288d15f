package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nugraharzk/room-booking-solution/internal/domain"
	"github.com/nugraharzk/room-booking-solution/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// maxTxAttempts bounds retries of a unit of work that lost a write race.
const maxTxAttempts = 3

type BookingService struct {
	bookingRepo ports.BookingRepo
	roomRepo    ports.RoomRepo
	uow         ports.UnitOfWork
	notifier    ports.BookingNotifier
	clock       domain.Clock
	logger      logger.Logger
}

func NewBookingService(
	bookingRepo ports.BookingRepo,
	roomRepo ports.RoomRepo,
	uow ports.UnitOfWork,
	notifier ports.BookingNotifier,
	clock domain.Clock,
	logger logger.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		uow:         uow,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
	}
}

// withTxRetry runs fn in a unit of work and retries it when the store
// reports a serialization conflict. The exclusion constraint on bookings
// makes a raced double-insert fail even if the in-tx check passed.
func (s *BookingService) withTxRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.uow.Do(ctx, fn)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		s.logger.Warn("unit of work lost a write race, retrying",
			logger.Int("attempt", attempt),
		)
	}
	return err
}

func (s *BookingService) Create(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error) {
	tr, err := domain.NewTimeRange(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	var (
		booking  *domain.Booking
		roomName string
	)
	err = s.withTxRetry(ctx, func(ctx context.Context) error {
		room, err := s.roomRepo.GetForUpdate(ctx, input.RoomID)
		if err != nil {
			return fmt.Errorf("load room: %w", err)
		}
		if !room.IsActive() {
			return domain.ErrRoomInactive
		}

		busy, err := s.bookingRepo.HasOverlap(ctx, room.ID(), tr.Start(), tr.End(), "")
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if busy {
			return domain.ErrBookingConflict
		}

		b, err := domain.NewBooking(room.ID(), input.CreatedByUserID, input.Subject, tr, s.clock.Now())
		if err != nil {
			return err
		}
		if err = s.bookingRepo.Create(ctx, b); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		booking = b
		roomName = room.Name()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		logger.String("booking_id", booking.ID()),
		logger.String("room_id", booking.RoomID()),
		logger.String("user_id", booking.CreatedByUserID()),
	)

	go s.notifier.NotifyBookingCreated(context.WithoutCancel(ctx), booking, roomName)

	return booking, nil
}

func (s *BookingService) Confirm(ctx context.Context, id string) (*domain.Booking, error) {
	var (
		booking  *domain.Booking
		roomName string
	)
	err := s.withTxRetry(ctx, func(ctx context.Context) error {
		b, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load booking: %w", err)
		}

		room, err := s.roomRepo.GetForUpdate(ctx, b.RoomID())
		if err != nil {
			return fmt.Errorf("load room: %w", err)
		}

		overlapping, err := s.bookingRepo.ListOverlapping(
			ctx, b.RoomID(), b.TimeRange().Start(), b.TimeRange().End(), b.ID(),
		)
		if err != nil {
			return fmt.Errorf("list overlapping: %w", err)
		}
		if !room.IsAvailable(b.TimeRange(), overlapping) {
			return domain.ErrBookingConflict
		}

		if err = b.Confirm(s.clock.Now()); err != nil {
			return err
		}
		if err = s.bookingRepo.Update(ctx, b); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		booking = b
		roomName = room.Name()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking confirmed",
		logger.String("booking_id", booking.ID()),
		logger.String("room_id", booking.RoomID()),
	)

	go s.notifier.NotifyBookingConfirmed(context.WithoutCancel(ctx), booking, roomName)

	return booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.withTxRetry(ctx, func(ctx context.Context) error {
		b, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load booking: %w", err)
		}

		alreadyCancelled := b.IsCancelled()
		if err = b.Cancel(s.clock.Now()); err != nil {
			return err
		}
		if !alreadyCancelled {
			if err = s.bookingRepo.Update(ctx, b); err != nil {
				return fmt.Errorf("update booking: %w", err)
			}
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled",
		logger.String("booking_id", booking.ID()),
		logger.String("room_id", booking.RoomID()),
	)

	roomName := ""
	if room, err := s.roomRepo.GetByID(ctx, booking.RoomID()); err != nil {
		s.logger.Error("failed to get room for notification",
			logger.String("room_id", booking.RoomID()),
			logger.String("error", err.Error()),
		)
	} else {
		roomName = room.Name()
	}

	go s.notifier.NotifyBookingCancelled(context.WithoutCancel(ctx), booking, roomName)

	return booking, nil
}

func (s *BookingService) Reschedule(ctx context.Context, id string, newStart, newEnd time.Time) (*domain.Booking, error) {
	tr, err := domain.NewTimeRange(newStart, newEnd)
	if err != nil {
		return nil, err
	}

	var booking *domain.Booking
	err = s.withTxRetry(ctx, func(ctx context.Context) error {
		b, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load booking: %w", err)
		}

		if _, err = s.roomRepo.GetForUpdate(ctx, b.RoomID()); err != nil {
			return fmt.Errorf("load room: %w", err)
		}

		busy, err := s.bookingRepo.HasOverlap(ctx, b.RoomID(), tr.Start(), tr.End(), b.ID())
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if busy {
			return domain.ErrBookingConflict
		}

		if err = b.Reschedule(tr, s.clock.Now()); err != nil {
			return err
		}
		if err = s.bookingRepo.Update(ctx, b); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking rescheduled",
		logger.String("booking_id", booking.ID()),
		logger.String("room_id", booking.RoomID()),
	)

	return booking, nil
}

func (s *BookingService) Complete(ctx context.Context, id string) (*domain.Booking, error) {
	var booking *domain.Booking
	err := s.withTxRetry(ctx, func(ctx context.Context) error {
		b, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("load booking: %w", err)
		}

		if err = b.Complete(s.clock.Now()); err != nil {
			return err
		}
		if err = s.bookingRepo.Update(ctx, b); err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking completed",
		logger.String("booking_id", booking.ID()),
	)

	return booking, nil
}

// CheckAvailability is a read-only projection of the overlap query. A
// missing or inactive room reads as unavailable, not as an error.
func (s *BookingService) CheckAvailability(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	tr, err := domain.NewTimeRange(start, end)
	if err != nil {
		return false, err
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load room: %w", err)
	}

	existing, err := s.bookingRepo.ListOverlapping(ctx, roomID, tr.Start(), tr.End(), "")
	if err != nil {
		return false, fmt.Errorf("list overlapping: %w", err)
	}

	return room.IsAvailable(tr, existing), nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *BookingService) ListByRoom(ctx context.Context, roomID string, from, to time.Time) ([]*domain.Booking, error) {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, fmt.Errorf("load room: %w", err)
	}
	return s.bookingRepo.ListByRoom(ctx, roomID, from, to)
}

// CompleteElapsed closes out confirmed bookings whose end time has
// passed. Called by the maintenance scheduler.
func (s *BookingService) CompleteElapsed(ctx context.Context) ([]*domain.Booking, error) {
	completed, err := s.bookingRepo.CompleteElapsed(ctx)
	if err != nil {
		return nil, fmt.Errorf("complete elapsed: %w", err)
	}

	if len(completed) > 0 {
		s.logger.Info("elapsed bookings completed",
			logger.Int("count", len(completed)),
		)
	}

	return completed, nil
}
