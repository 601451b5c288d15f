package service

import (
	"context"
	"testing"
	"time"

	"github.com/nugraharzk/room-booking-solution/internal/domain"
	"github.com/nugraharzk/room-booking-solution/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testHour(h int) time.Time {
	return time.Date(2025, 3, 10, h, 0, 0, 0, time.UTC)
}

func activeRoom(id, name string) *domain.Room {
	return domain.RestoreRoom(id, name, "3rd floor", 10, true, testNow, testNow)
}

func inactiveRoom(id, name string) *domain.Room {
	return domain.RestoreRoom(id, name, "3rd floor", 10, false, testNow, testNow)
}

func pendingBooking(id, roomID string, start, end time.Time) *domain.Booking {
	return domain.RestoreBooking(id, roomID, "u1", "standup", start, end, domain.BookingStatusPending, testNow, testNow)
}

type bookingMocks struct {
	bookingRepo *mocks.MockBookingRepo
	roomRepo    *mocks.MockRoomRepo
	uow         *mocks.MockUnitOfWork
	notifier    *mocks.MockBookingNotifier
}

func newBookingService(t *testing.T) (*BookingService, bookingMocks) {
	t.Helper()
	m := bookingMocks{
		bookingRepo: mocks.NewMockBookingRepo(t),
		roomRepo:    mocks.NewMockRoomRepo(t),
		uow:         mocks.NewMockUnitOfWork(t),
		notifier:    mocks.NewMockBookingNotifier(t),
	}
	svc := NewBookingService(m.bookingRepo, m.roomRepo, m.uow, m.notifier, fixedClock{now: testNow}, newTestLogger(t))
	return svc, m
}

func passthroughUow(m *mocks.MockUnitOfWork) *mocks.MockUnitOfWork_Do_Call {
	return m.EXPECT().Do(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func TestBookingService_Create(t *testing.T) {
	svc, m := newBookingService(t)

	passthroughUow(m.uow)
	m.roomRepo.EXPECT().GetForUpdate(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().HasOverlap(mock.Anything, "r1", testHour(10), testHour(11), "").Return(false, nil)
	m.bookingRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	m.notifier.EXPECT().NotifyBookingCreated(mock.Anything, mock.Anything, "Boardroom").Return()

	booking, err := svc.Create(context.Background(), domain.CreateBookingInput{
		RoomID:          "r1",
		CreatedByUserID: "u1",
		Subject:         "standup",
		Start:           testHour(10),
		End:             testHour(11),
	})

	require.NoError(t, err)
	assert.Equal(t, "r1", booking.RoomID())
	assert.Equal(t, domain.BookingStatusPending, booking.Status())
	assert.NotEmpty(t, booking.ID())

	time.Sleep(50 * time.Millisecond) // goroutine notify
}

func TestBookingService_Create_InvalidRange(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Create(context.Background(), domain.CreateBookingInput{
		RoomID:          "r1",
		CreatedByUserID: "u1",
		Start:           testHour(11),
		End:             testHour(10),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestBookingService_Create_RoomNotFound(t *testing.T) {
	svc, m := newBookingService(t)

	passthroughUow(m.uow)
	m.roomRepo.EXPECT().GetForUpdate(mock.Anything, "missing").Return(nil, domain.ErrRoomNotFound)

	_, err := svc.Create(context.Background(), domain.CreateBookingInput{
		RoomID:          "missing",
		CreatedByUserID: "u1",
		Start:           testHour(10),
		End:             testHour(11),
	})

	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestBookingService_Create_RoomInactive(t *testing.T) {
	svc, m := newBookingService(t)

	passthroughUow(m.uow)
	m.roomRepo.EXPECT().GetForUpdate(mock.Anything, "r1").Return(inactiveRoom("r1", "Boardroom"), nil)

	_, err := svc.Create(context.Background(), domain.CreateBookingInput{
		RoomID:          "r1",
		CreatedByUserID: "u1",
		Start:           testHour(10),
		End:             testHour(11),
	})

	assert.ErrorIs(t, err, domain.ErrRoomInactive)
}

func TestBookingService_Create_Conflict(t *testing.T) {
	svc, m := newBookingService(t)

	passthroughUow(m.uow)
	m.roomRepo.EXPECT().GetForUpdate(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().HasOverlap(mock.Anything, "r1", testHour(10), testHour(11), "").Return(true, nil)

	_, err := svc.Create(context.Background(), domain.CreateBookingInput{
		RoomID:          "r1",
		CreatedByUserID: "u1",
		Start:           testHour(10),
		End:             testHour(11),
	})

	assert.ErrorIs(t, err, domain.ErrBookingConflict)
}

func TestBookingService_Create_RetriesOnWriteRace(t *testing.T) {
	svc, m := newBookingService(t)

	m.uow.EXPECT().Do(mock.Anything, mock.Anything).Return(domain.ErrConcurrencyConflict).Twice()
	passthroughUow(m.uow).Once()
	m.roomRepo.EXPECT().GetForUpdate(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().HasOverlap(mock.Anything, "r1", testHour(10), testHour(11), "").Return(false, nil)
	m.bookingRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	m.notifier.EXPECT().NotifyBookingCreated(mock.Anything, mock.Anything, "Boardroom").Return()

	booking, err := svc.Create(context.Background(), domain.CreateBookingInput{
		RoomID:          "r1",
		CreatedByUserID: "u1",
		Start:           testHour(10),
		End:             testHour(11),
	})

	require.NoError(t, err)
	assert.NotNil(t, booking)

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_Create_GivesUpAfterRetries(t *testing.T) {
	svc, m := newBookingService(t)

	m.uow.EXPECT().Do(mock.Anything, mock.Anything).Return(domain.ErrConcurrencyConflict).Times(3)

	_, err := svc.Create(context.Background(), domain.CreateBookingInput{
		RoomID:          "r1",
		CreatedByUserID: "u1",
		Start:           testHour(10),
		End:             testHour(11),
	})

	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
}

func TestBookingService_Confirm(t *testing.T) {
	svc, m := newBookingService(t)

	b := pendingBooking("b1", "r1", testHour(10), testHour(11))

	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)
	m.roomRepo.EXPECT().GetForUpdate(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().ListOverlapping(mock.Anything, "r1", testHour(10), testHour(11), "b1").Return(nil, nil)
	m.bookingRepo.EXPECT().Update(mock.Anything, b).Return(nil)
	m.notifier.EXPECT().NotifyBookingConfirmed(mock.Anything, b, "Boardroom").Return()

	confirmed, err := svc.Confirm(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, confirmed.Status())

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_Confirm_Conflict(t *testing.T) {
	svc, m := newBookingService(t)

	b := pendingBooking("b1", "r1", testHour(10), testHour(11))
	rival := domain.RestoreBooking(
		"b2", "r1", "u2", "retro",
		testHour(10).Add(30*time.Minute), testHour(11).Add(30*time.Minute),
		domain.BookingStatusConfirmed, testNow, testNow,
	)

	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)
	m.roomRepo.EXPECT().GetForUpdate(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().ListOverlapping(mock.Anything, "r1", testHour(10), testHour(11), "b1").
		Return([]*domain.Booking{rival}, nil)

	_, err := svc.Confirm(context.Background(), "b1")

	assert.ErrorIs(t, err, domain.ErrBookingConflict)
	assert.Equal(t, domain.BookingStatusPending, b.Status())
}

func TestBookingService_Confirm_NotFound(t *testing.T) {
	svc, m := newBookingService(t)

	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "missing").Return(nil, domain.ErrBookingNotFound)

	_, err := svc.Confirm(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_Cancel(t *testing.T) {
	svc, m := newBookingService(t)

	b := pendingBooking("b1", "r1", testHour(10), testHour(11))

	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)
	m.bookingRepo.EXPECT().Update(mock.Anything, b).Return(nil)
	m.roomRepo.EXPECT().GetByID(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.notifier.EXPECT().NotifyBookingCancelled(mock.Anything, b, "Boardroom").Return()

	cancelled, err := svc.Cancel(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status())

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_Cancel_AlreadyCancelled(t *testing.T) {
	svc, m := newBookingService(t)

	b := domain.RestoreBooking(
		"b1", "r1", "u1", "standup",
		testHour(10), testHour(11),
		domain.BookingStatusCancelled, testNow, testNow,
	)

	// no Update expectation: an idempotent cancel must not write
	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)
	m.roomRepo.EXPECT().GetByID(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.notifier.EXPECT().NotifyBookingCancelled(mock.Anything, b, "Boardroom").Return()

	cancelled, err := svc.Cancel(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status())

	time.Sleep(50 * time.Millisecond)
}

func TestBookingService_Cancel_Completed(t *testing.T) {
	svc, m := newBookingService(t)

	b := domain.RestoreBooking(
		"b1", "r1", "u1", "standup",
		testHour(10), testHour(11),
		domain.BookingStatusCompleted, testNow, testNow,
	)

	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)

	_, err := svc.Cancel(context.Background(), "b1")

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBookingService_Reschedule(t *testing.T) {
	svc, m := newBookingService(t)

	b := pendingBooking("b1", "r1", testHour(10), testHour(11))

	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)
	m.roomRepo.EXPECT().GetForUpdate(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().HasOverlap(mock.Anything, "r1", testHour(14), testHour(15), "b1").Return(false, nil)
	m.bookingRepo.EXPECT().Update(mock.Anything, b).Return(nil)

	moved, err := svc.Reschedule(context.Background(), "b1", testHour(14), testHour(15))

	require.NoError(t, err)
	assert.Equal(t, testHour(14), moved.TimeRange().Start())
	assert.Equal(t, testHour(15), moved.TimeRange().End())
	assert.Equal(t, domain.BookingStatusPending, moved.Status())
}

func TestBookingService_Reschedule_Conflict(t *testing.T) {
	svc, m := newBookingService(t)

	b := pendingBooking("b1", "r1", testHour(10), testHour(11))

	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)
	m.roomRepo.EXPECT().GetForUpdate(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().HasOverlap(mock.Anything, "r1", testHour(14), testHour(15), "b1").Return(true, nil)

	_, err := svc.Reschedule(context.Background(), "b1", testHour(14), testHour(15))

	assert.ErrorIs(t, err, domain.ErrBookingConflict)
	assert.Equal(t, testHour(10), b.TimeRange().Start(), "original range is kept on conflict")
}

func TestBookingService_Reschedule_InvalidRange(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Reschedule(context.Background(), "b1", testHour(15), testHour(14))

	assert.ErrorIs(t, err, domain.ErrInvalidTimeRange)
}

func TestBookingService_Complete(t *testing.T) {
	svc, m := newBookingService(t)

	b := domain.RestoreBooking(
		"b1", "r1", "u1", "standup",
		testHour(7), testHour(8),
		domain.BookingStatusConfirmed, testNow, testNow,
	)

	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)
	m.bookingRepo.EXPECT().Update(mock.Anything, b).Return(nil)

	completed, err := svc.Complete(context.Background(), "b1")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCompleted, completed.Status())
}

func TestBookingService_Complete_NotEnded(t *testing.T) {
	svc, m := newBookingService(t)

	b := domain.RestoreBooking(
		"b1", "r1", "u1", "standup",
		testHour(10), testHour(11),
		domain.BookingStatusConfirmed, testNow, testNow,
	)

	passthroughUow(m.uow)
	m.bookingRepo.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)

	_, err := svc.Complete(context.Background(), "b1")

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBookingService_CheckAvailability(t *testing.T) {
	svc, m := newBookingService(t)

	m.roomRepo.EXPECT().GetByID(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().ListOverlapping(mock.Anything, "r1", testHour(10), testHour(11), "").Return(nil, nil)

	available, err := svc.CheckAvailability(context.Background(), "r1", testHour(10), testHour(11))

	require.NoError(t, err)
	assert.True(t, available)
}

func TestBookingService_CheckAvailability_Busy(t *testing.T) {
	svc, m := newBookingService(t)

	rival := pendingBooking("b2", "r1", testHour(10), testHour(12))

	m.roomRepo.EXPECT().GetByID(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().ListOverlapping(mock.Anything, "r1", testHour(10), testHour(11), "").
		Return([]*domain.Booking{rival}, nil)

	available, err := svc.CheckAvailability(context.Background(), "r1", testHour(10), testHour(11))

	require.NoError(t, err)
	assert.False(t, available)
}

func TestBookingService_CheckAvailability_MissingRoom(t *testing.T) {
	svc, m := newBookingService(t)

	m.roomRepo.EXPECT().GetByID(mock.Anything, "missing").Return(nil, domain.ErrRoomNotFound)

	available, err := svc.CheckAvailability(context.Background(), "missing", testHour(10), testHour(11))

	require.NoError(t, err, "a missing room reads as unavailable, not as an error")
	assert.False(t, available)
}

func TestBookingService_CheckAvailability_InactiveRoom(t *testing.T) {
	svc, m := newBookingService(t)

	m.roomRepo.EXPECT().GetByID(mock.Anything, "r1").Return(inactiveRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().ListOverlapping(mock.Anything, "r1", testHour(10), testHour(11), "").Return(nil, nil)

	available, err := svc.CheckAvailability(context.Background(), "r1", testHour(10), testHour(11))

	require.NoError(t, err)
	assert.False(t, available)
}

func TestBookingService_ListByRoom(t *testing.T) {
	svc, m := newBookingService(t)

	b := pendingBooking("b1", "r1", testHour(10), testHour(11))

	m.roomRepo.EXPECT().GetByID(mock.Anything, "r1").Return(activeRoom("r1", "Boardroom"), nil)
	m.bookingRepo.EXPECT().ListByRoom(mock.Anything, "r1", testHour(0), testHour(23)).
		Return([]*domain.Booking{b}, nil)

	bookings, err := svc.ListByRoom(context.Background(), "r1", testHour(0), testHour(23))

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b1", bookings[0].ID())
}

func TestBookingService_ListByRoom_MissingRoom(t *testing.T) {
	svc, m := newBookingService(t)

	m.roomRepo.EXPECT().GetByID(mock.Anything, "missing").Return(nil, domain.ErrRoomNotFound)

	_, err := svc.ListByRoom(context.Background(), "missing", testHour(0), testHour(23))

	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestBookingService_CompleteElapsed(t *testing.T) {
	svc, m := newBookingService(t)

	done := domain.RestoreBooking(
		"b1", "r1", "u1", "standup",
		testHour(7), testHour(8),
		domain.BookingStatusCompleted, testNow, testNow,
	)

	m.bookingRepo.EXPECT().CompleteElapsed(mock.Anything).Return([]*domain.Booking{done}, nil)

	completed, err := svc.CompleteElapsed(context.Background())

	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "b1", completed[0].ID())
}
