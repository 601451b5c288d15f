package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nugraharzk/room-booking-solution/internal/domain"
	"github.com/nugraharzk/room-booking-solution/internal/scheduler/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

func TestScheduler_Tick_CompletesElapsed(t *testing.T) {
	completer := mocks.NewMockBookingCompleter(t)
	log := newTestLogger(t)

	s := New(completer, 50*time.Millisecond, log)

	now := time.Now().UTC()
	completed := []*domain.Booking{
		domain.RestoreBooking(
			"b1", "r1", "u1", "standup",
			now.Add(-2*time.Hour), now.Add(-time.Hour),
			domain.BookingStatusCompleted, now, now,
		),
	}
	completer.EXPECT().CompleteElapsed(mock.Anything).Return(completed, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(completer.Calls), 1)
}

func TestScheduler_Tick_HandlesError(t *testing.T) {
	completer := mocks.NewMockBookingCompleter(t)
	log := newTestLogger(t)

	s := New(completer, 50*time.Millisecond, log)

	completer.EXPECT().CompleteElapsed(mock.Anything).Return(nil, errors.New("db error"))

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(completer.Calls), 1)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	completer := mocks.NewMockBookingCompleter(t)
	log := newTestLogger(t)

	s := New(completer, time.Second, log) // interval longer than test

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
		// success
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}

func TestScheduler_MultipleTicks(t *testing.T) {
	completer := mocks.NewMockBookingCompleter(t)
	log := newTestLogger(t)

	s := New(completer, 30*time.Millisecond, log)

	completer.EXPECT().CompleteElapsed(mock.Anything).Return(nil, nil).Times(3)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	calls := len(completer.Calls)
	assert.GreaterOrEqual(t, calls, 3)
}
